// Package docs registers the OpenAPI document served by the swagger UI.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/orders": {
            "get": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "List orders of a distribution hub",
                "parameters": [
                    {"type": "integer", "description": "Distribution hub ID", "name": "DistributionHubID", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Order"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpapi.errorResp"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Create order",
                "parameters": [
                    {"description": "Order", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/httpapi.createOrderReq"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/httpapi.createdResp"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpapi.errorResp"}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/orders/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Get order by id",
                "parameters": [
                    {"type": "integer", "description": "Order ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Order"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpapi.errorResp"}}
                }
            }
        }
    },
    "definitions": {
        "domain.DistributionHub": {
            "type": "object",
            "properties": {
                "Address": {"type": "string"},
                "DistributionHubID": {"type": "integer"},
                "Name": {"type": "string"}
            }
        },
        "domain.Order": {
            "type": "object",
            "properties": {
                "CreatedAt": {"type": "string"},
                "CustomerID": {"type": "integer"},
                "DistributionHub": {"$ref": "#/definitions/domain.DistributionHub"},
                "OrderID": {"type": "integer"},
                "OrderItems": {"type": "array", "items": {"$ref": "#/definitions/domain.OrderItem"}},
                "OrderStatus": {"$ref": "#/definitions/domain.OrderStatus"},
                "Total": {"type": "string"}
            }
        },
        "domain.OrderItem": {
            "type": "object",
            "properties": {
                "ImagePath": {"type": "string"},
                "Name": {"type": "string"},
                "Price": {"type": "string"},
                "ProductID": {"type": "integer"},
                "Quantity": {"type": "integer"}
            }
        },
        "domain.OrderStatus": {
            "type": "object",
            "properties": {
                "Name": {"type": "string"},
                "OrderStatusID": {"type": "integer"}
            }
        },
        "httpapi.createOrderReq": {
            "type": "object",
            "properties": {
                "CustomerID": {"type": "integer"},
                "OrderItems": {"type": "array", "items": {"$ref": "#/definitions/httpapi.orderItemReq"}},
                "Total": {"type": "string", "example": "59.30"}
            }
        },
        "httpapi.orderItemReq": {
            "type": "object",
            "properties": {
                "ProductID": {"type": "integer"},
                "Quantity": {"type": "integer"}
            }
        },
        "httpapi.createdResp": {
            "type": "object",
            "properties": {
                "order_id": {"type": "integer"},
                "status": {"type": "string", "example": "created"}
            }
        },
        "httpapi.errorResp": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "missing_order_items"},
                "error_code": {"type": "integer", "example": 3}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "orderhub API",
	Description:      "Order intake: validated order creation and per-hub order queries.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
