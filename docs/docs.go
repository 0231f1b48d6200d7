// Package docs registers the OpenAPI description served under /swagger.
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
        "/api/admins/register": {
            "post": {
                "tags": ["admins"],
                "summary": "Register an admin and its company",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/registerAdminRequest"}}],
                "responses": {
                    "201": {"description": "Token and admin", "schema": {"$ref": "#/definitions/authResponse"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/admins/login": {
            "post": {
                "tags": ["admins"],
                "summary": "Log in as admin",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/loginRequest"}}],
                "responses": {
                    "200": {"description": "Token and admin", "schema": {"$ref": "#/definitions/authResponse"}},
                    "400": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/admins/me": {
            "get": {
                "security": [{"TokenAuth": []}],
                "tags": ["admins"],
                "summary": "Current admin",
                "responses": {
                    "200": {"description": "Admin"},
                    "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/employees/login": {
            "post": {
                "tags": ["employees"],
                "summary": "Log in as employee",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/loginRequest"}}],
                "responses": {
                    "200": {"description": "Token and employee", "schema": {"$ref": "#/definitions/authResponse"}},
                    "400": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/employees/add": {
            "post": {
                "security": [{"TokenAuth": []}],
                "tags": ["employees"],
                "summary": "Provision an employee with a generated password",
                "responses": {
                    "201": {"description": "Employee and one-time password"},
                    "403": {"description": "Admins only", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/feedback": {
            "post": {
                "security": [{"TokenAuth": []}],
                "tags": ["feedback"],
                "summary": "Submit feedback as admin",
                "responses": {
                    "201": {"description": "Feedback"},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/properties": {
            "get": {
                "security": [{"TokenAuth": []}],
                "tags": ["properties"],
                "summary": "List properties visible to the caller",
                "parameters": [
                    {"in": "query", "name": "page", "type": "integer"},
                    {"in": "query", "name": "limit", "type": "integer"},
                    {"in": "query", "name": "status", "type": "string"},
                    {"in": "query", "name": "type", "type": "string"},
                    {"in": "query", "name": "search", "type": "string"}
                ],
                "responses": {"200": {"description": "Page of properties"}}
            }
        },
        "/health": {
            "get": {
                "tags": ["ops"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "ok"}}
            }
        },
        "/health/ready": {
            "get": {
                "tags": ["ops"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "All dependencies healthy"},
                    "503": {"description": "Degraded"}
                }
            }
        }
    },
    "definitions": {
        "registerAdminRequest": {
            "type": "object",
            "required": ["username", "email", "password", "companyName"],
            "properties": {
                "username": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "companyName": {"type": "string"}
            }
        },
        "loginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "authResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"}
            }
        },
        "errorResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "error": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "TokenAuth": {
            "type": "apiKey",
            "name": "x-auth-token",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "HR Feedback API",
	Description:      "Admin and employee accounts, company profiles, feedback threads and property listings.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
