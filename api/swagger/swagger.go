package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Course Planner API",
        "description": "Two-semester course schedule generation service",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Catalog", "description": "Timetable dataset ingestion and browsing"},
        {"name": "Planner", "description": "Conflict-free schedule generation"},
        {"name": "Export", "description": "Plan downloads (ICS, CSV, PDF)"},
        {"name": "Cart", "description": "Shareable saved course selections"}
    ],
    "paths": {
        "/catalog": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List uploaded datasets",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Catalog"],
                "summary": "Upload a timetable export (CSV or XLSX)",
                "consumes": ["multipart/form-data"],
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "file", "in": "formData", "type": "file", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid or empty file", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing or invalid token", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/catalog/{id}": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Get a dataset header",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown dataset", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Catalog"],
                "summary": "Delete a dataset",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Unknown dataset", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/catalog/{id}/courses": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List the selectable courses of a dataset",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "term", "in": "query", "type": "string"},
                    {"name": "department", "in": "query", "type": "string"},
                    {"name": "commonCore", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown dataset", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/plans/generate": {
            "post": {
                "tags": ["Planner"],
                "summary": "Generate every conflict-free two-term schedule",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GeneratePlansRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Selection exceeds term capacity or names unknown sections", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/plans/export": {
            "post": {
                "tags": ["Export"],
                "summary": "Export a generated plan as ICS, CSV, or PDF",
                "produces": ["application/octet-stream"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExportPlanRequest"}}
                ],
                "responses": {
                    "200": {"description": "File download"},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/cart/{hash}": {
            "get": {
                "tags": ["Cart"],
                "summary": "Load the saved selection for a catalog hash",
                "parameters": [
                    {"name": "hash", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Nothing saved", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Cart"],
                "summary": "Save a selection under a catalog hash",
                "parameters": [
                    {"name": "hash", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveCartRequest"}}
                ],
                "responses": {
                    "200": {"description": "Saved", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Cart"],
                "summary": "Delete the saved selection",
                "parameters": [
                    {"name": "hash", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "definitions": {
        "GeneratePlansRequest": {
            "type": "object",
            "required": ["datasetId", "term1", "courses"],
            "properties": {
                "datasetId": {"type": "string"},
                "term1": {"type": "string"},
                "term2": {"type": "string"},
                "courses": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/SelectedCourse"}
                },
                "blockouts": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/Blockout"}
                },
                "maxCoursesPerTerm": {"type": "integer"},
                "limit": {"type": "integer"}
            }
        },
        "SelectedCourse": {
            "type": "object",
            "required": ["code", "sections"],
            "properties": {
                "code": {"type": "string"},
                "title": {"type": "string"},
                "sections": {"type": "array", "items": {"type": "string"}}
            }
        },
        "Blockout": {
            "type": "object",
            "required": ["name", "day"],
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "day": {"type": "string", "enum": ["mon", "tue", "wed", "thu", "fri", "sat", "sun"]},
                "startMin": {"type": "integer", "minimum": 480, "maximum": 1200},
                "endMin": {"type": "integer", "minimum": 480, "maximum": 1200},
                "applyTo": {"type": "string", "enum": ["both", "term1", "term2"]}
            }
        },
        "ExportPlanRequest": {
            "type": "object",
            "required": ["format", "plan"],
            "properties": {
                "format": {"type": "string", "enum": ["ics", "csv", "pdf"]},
                "title": {"type": "string"},
                "plan": {"type": "object"},
                "titleTemplate": {"type": "string"},
                "descriptionTemplate": {"type": "string"},
                "includeLocation": {"type": "boolean"},
                "includeBlockouts": {"type": "boolean"},
                "roundToHalfHour": {"type": "boolean"},
                "blockouts": {"type": "array", "items": {"$ref": "#/definitions/Blockout"}}
            }
        },
        "SaveCartRequest": {
            "type": "object",
            "required": ["courses"],
            "properties": {
                "courses": {"type": "array", "items": {"$ref": "#/definitions/SelectedCourse"}},
                "blockouts": {"type": "array", "items": {"$ref": "#/definitions/Blockout"}}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
