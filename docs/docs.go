// Package docs holds the OpenAPI description served at /swagger.
// Regenerate with: swag init -g cmd/server/main.go -o docs
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
        "/auth/signup": {"post": {"tags": ["auth"], "summary": "Sign up a business", "responses": {"201": {"description": "Business created"}}}},
        "/auth/login": {"post": {"tags": ["auth"], "summary": "Log in", "responses": {"200": {"description": "Token pair"}}}},
        "/auth/refresh": {"post": {"tags": ["auth"], "summary": "Refresh tokens", "responses": {"200": {"description": "Token pair"}}}},
        "/calculate": {"post": {"security": [{"BearerAuth": []}], "tags": ["documents"], "summary": "Calculate totals", "responses": {"200": {"description": "Rows and totals"}}}},
        "/business": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["business"], "summary": "Get business profile", "responses": {"200": {"description": "Business profile"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["business"], "summary": "Update business profile", "responses": {"200": {"description": "Business updated"}}}
        },
        "/users": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "List users", "responses": {"200": {"description": "List of users"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Add a user", "responses": {"201": {"description": "User created"}}}
        },
        "/users/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Get user by ID", "responses": {"200": {"description": "User details"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Update a user", "responses": {"200": {"description": "User updated"}}}
        },
        "/documents": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["documents"], "summary": "List documents", "responses": {"200": {"description": "List of documents"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["documents"], "summary": "Create a document", "responses": {"201": {"description": "Document created"}, "422": {"description": "Submitted totals do not match"}}}
        },
        "/documents/export": {"get": {"security": [{"BearerAuth": []}], "tags": ["documents"], "summary": "Export documents", "responses": {"200": {"description": "Export file"}}}},
        "/documents/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["documents"], "summary": "Get document by ID", "responses": {"200": {"description": "Document details"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["documents"], "summary": "Update a document", "responses": {"200": {"description": "Document updated"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["documents"], "summary": "Delete a document", "responses": {"200": {"description": "Document deleted"}}}
        },
        "/inventory": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["inventory"], "summary": "List inventory items", "responses": {"200": {"description": "List of items"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["inventory"], "summary": "Create an inventory item", "responses": {"201": {"description": "Item created"}}}
        },
        "/inventory/import": {"post": {"security": [{"BearerAuth": []}], "tags": ["inventory"], "summary": "Import inventory", "responses": {"200": {"description": "Import summary"}}}},
        "/inventory/export": {"get": {"security": [{"BearerAuth": []}], "tags": ["inventory"], "summary": "Export inventory", "responses": {"200": {"description": "Export file"}}}},
        "/inventory/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["inventory"], "summary": "Get inventory item by ID", "responses": {"200": {"description": "Item details"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["inventory"], "summary": "Update an inventory item", "responses": {"200": {"description": "Item updated"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["inventory"], "summary": "Delete an inventory item", "responses": {"200": {"description": "Item deleted"}}}
        },
        "/exports": {"post": {"security": [{"BearerAuth": []}], "tags": ["exports"], "summary": "Queue a document export", "responses": {"202": {"description": "Job queued"}}}},
        "/exports/{id}": {"get": {"security": [{"BearerAuth": []}], "tags": ["exports"], "summary": "Get export job status", "responses": {"200": {"description": "Job status"}}}},
        "/drafts": {"post": {"security": [{"BearerAuth": []}], "tags": ["drafts"], "summary": "Start a draft", "responses": {"201": {"description": "Draft created"}}}},
        "/drafts/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["drafts"], "summary": "Get a draft", "responses": {"200": {"description": "Draft"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["drafts"], "summary": "Update a draft step", "responses": {"200": {"description": "Updated draft"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["drafts"], "summary": "Discard a draft", "responses": {"200": {"description": "Draft discarded"}}}
        },
        "/drafts/{id}/next": {"post": {"security": [{"BearerAuth": []}], "tags": ["drafts"], "summary": "Advance to the next step", "responses": {"200": {"description": "Updated draft"}}}},
        "/drafts/{id}/back": {"post": {"security": [{"BearerAuth": []}], "tags": ["drafts"], "summary": "Return to the previous step", "responses": {"200": {"description": "Updated draft"}}}},
        "/drafts/{id}/submit": {"post": {"security": [{"BearerAuth": []}], "tags": ["drafts"], "summary": "Submit a draft", "responses": {"201": {"description": "Document created"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the access token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Ledgerbook API",
	Description:      "Invoicing, inventory and GST totals for small businesses.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
