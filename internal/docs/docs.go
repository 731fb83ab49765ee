// Package docs serves the OpenAPI description of the REST and websocket routes.
package docs

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const DocumentRoute = "/swagger/openapi.json"

//go:embed openapi.json
var openAPIDocument []byte

// Register mounts the raw document at DocumentRoute and the Swagger UI under /swagger/.
func Register(router gin.IRouter) {
	router.GET(DocumentRoute, func(ctx *gin.Context) {
		ctx.Data(http.StatusOK, "application/json; charset=utf-8", openAPIDocument)
	})
	router.GET("/swagger/ui/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL(DocumentRoute)))
}
