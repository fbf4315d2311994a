// Package docs 注册 Swagger 文档，由 swag 根据控制器注释生成
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/ping": {
            "get": {"tags": ["Health"], "summary": "Health check", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "500": {"description": "Database unavailable"}}}
        },
        "/health/cache-stats": {
            "get": {"tags": ["Health"], "summary": "Cache statistics", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"], "summary": "User Login", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/controllers.LoginRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad request"}, "401": {"description": "Invalid credentials"}}
            }
        },
        "/auth/register": {
            "post": {
                "tags": ["Auth"], "summary": "Register", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/services.RegisterInput"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Duplicate identity or invalid role"}}
            }
        },
        "/schools": {
            "get": {"tags": ["Catalog"], "summary": "List schools", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/caterers": {
            "get": {"tags": ["Catalog"], "summary": "List caterers", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/dashboard/{role}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Dashboard"], "summary": "Role dashboard", "produces": ["application/json"],
                "parameters": [{"in": "path", "name": "role", "required": true, "type": "string", "enum": ["parent", "delivery_staff", "school_admin", "caterer", "admin"]}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid role"}, "401": {"description": "Missing token"}, "403": {"description": "Invalid or expired token"}, "404": {"description": "Profile not found"}}
            }
        },
        "/children": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Parent"], "summary": "Add child", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/services.AddChildInput"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad request"}, "404": {"description": "Profile not found"}}
            }
        },
        "/delivery/availability": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["Delivery"], "summary": "Set availability", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/controllers.AvailabilityRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid status"}, "404": {"description": "Profile not found"}}
            }
        },
        "/orders/{id}/status": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["Orders"], "summary": "Update order status", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "integer"},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/controllers.OrderStatusRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid status"}, "404": {"description": "Order not found"}}
            }
        },
        "/notifications": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Notifications"], "summary": "List notifications", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/notifications/{id}/read": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["Notifications"], "summary": "Mark notification read", "produces": ["application/json"],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "integer"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Notification not found"}}
            }
        }
    },
    "definitions": {
        "controllers.LoginRequest": {
            "type": "object", "required": ["password", "username"],
            "properties": {"username": {"type": "string", "example": "rajesh_sharma"}, "password": {"type": "string", "example": "password123"}}
        },
        "controllers.AvailabilityRequest": {
            "type": "object", "required": ["status"],
            "properties": {"status": {"type": "string", "example": "available"}}
        },
        "controllers.OrderStatusRequest": {
            "type": "object", "required": ["status"],
            "properties": {"status": {"type": "string", "example": "in_transit"}}
        },
        "services.AddChildInput": {
            "type": "object", "required": ["name"],
            "properties": {
                "name": {"type": "string", "example": "Aarav"},
                "age": {"type": "integer", "example": 8},
                "className": {"type": "string", "example": "3A"},
                "schoolId": {"type": "integer", "example": 1},
                "allergies": {"type": "array", "items": {"type": "string"}},
                "foodPreferences": {"type": "array", "items": {"type": "string"}}
            }
        },
        "services.RegisterInput": {
            "type": "object", "required": ["role", "userData"],
            "properties": {
                "role": {"type": "string", "example": "parent"},
                "userData": {
                    "type": "object",
                    "properties": {"username": {"type": "string"}, "email": {"type": "string"}, "phone": {"type": "string"}, "password": {"type": "string"}}
                },
                "roleData": {"type": "object"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"description": "Enter the token with the ` + "`" + `Bearer ` + "`" + ` prefix", "type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "LunchBox Express API",
	Description:      "School lunch delivery platform: role dashboards, order tracking and realtime notifications",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
