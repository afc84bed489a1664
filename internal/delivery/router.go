package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const indexPageContent = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Marketplace API</title>
    <style>
        body { font-family: Helvetica, Arial, sans-serif; line-height: 1.6; padding: 20px; background-color: #f9f9f9; color: #333; }
        h1, h2 { border-bottom: 1px solid #ccc; padding-bottom: 5px; }
        ul { list-style: none; padding-left: 0; }
        li { margin-bottom: 15px; background-color: #fff; padding: 10px; border: 1px solid #eee; border-radius: 4px; }
        code { background-color: #e8e8e8; padding: 3px 6px; border-radius: 3px; font-family: Consolas, Monaco, monospace; }
        .method { font-weight: bold; display: inline-block; width: 60px; }
        .method-post { color: #49cc90; }
        .method-get { color: #61affe; }
        .method-delete { color: #f93e3e; }
    </style>
</head>
<body>
    <h1>Marketplace API</h1>

    <h2>Products</h2>
    <ul>
        <li><span class="method method-get">GET</span> <code><a href="/products">/products</a></code> - List every product in creation order.</li>
        <li><span class="method method-post">POST</span> <code>/products</code> - Create a product. <code>multipart/form-data</code> with <code>productImage</code> (file), <code>productName</code>, <code>productDescription</code>, <code>productPrice</code>.</li>
        <li><span class="method method-delete">DELETE</span> <code>/products/{id}</code> - Delete a product by its ID.</li>
    </ul>

    <h2>Views</h2>
    <ul>
        <li><span class="method method-post">POST</span> <code>/view-count</code> - Count a page view and return <code>{"count": N}</code>. <code>GET</code> does the same for older clients.</li>
    </ul>

    <h2>Images</h2>
    <ul>
        <li><span class="method method-get">GET</span> <code>/uploads/{filename}</code> - Uploaded product images.</li>
    </ul>
</body>
</html>
`

type RouterConfig struct {
	UploadsDir         string
	UploadsURLPrefix   string
	MaxMultipartMemory int64
	CORSAllowOrigin    string
}

func serveIndexPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexPageContent))
}

func NewRouter(cfg RouterConfig, productHandler *ProductHandler, viewHandler *ViewHandler, logger *logrus.Logger) *gin.Engine {
	router := gin.New()
	if cfg.MaxMultipartMemory > 0 {
		router.MaxMultipartMemory = cfg.MaxMultipartMemory
	}

	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(RequestLogger(logger))
	router.Use(CORS(cfg.CORSAllowOrigin))

	router.GET("/", serveIndexPage)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.OPTIONS("/*path", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	router.Static(cfg.UploadsURLPrefix, cfg.UploadsDir)
	logger.Infof("Serving %s at %s", cfg.UploadsDir, cfg.UploadsURLPrefix)

	productHandler.RegisterRoutes(router)
	viewHandler.RegisterRoutes(router)
	logger.Info("API Routes registered.")

	return router
}
