// Package docs provides Swagger documentation for the API.
package docs

// @title ConverseIQ Dashboard API
// @version 1.0
// @description API for the conversation quality dashboard
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.converseiq.io/support
// @contact.email support@converseiq.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
