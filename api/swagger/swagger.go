package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Grade Genius API",
        "description": "Weighted course grade calculator with target score solving",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Grades", "description": "Grade calculation, GPE lookup and exports"}
    ],
    "paths": {
        "/grades/calculate": {
            "post": {
                "tags": ["Grades"],
                "summary": "Calculate period and final grades",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CalculateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/grades/target": {
            "post": {
                "tags": ["Grades"],
                "summary": "Solve the scores needed to reach a target grade",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CalculateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/grades/gpe": {
            "get": {
                "tags": ["Grades"],
                "summary": "Look up the grade point equivalent of a final grade",
                "parameters": [
                    {"name": "grade", "in": "query", "required": true, "type": "number", "minimum": 0, "maximum": 1000}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid grade", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/grades/scale": {
            "get": {
                "tags": ["Grades"],
                "summary": "List the grade point equivalent scale",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/grades/export": {
            "post": {
                "tags": ["Grades"],
                "summary": "Export a grade summary",
                "produces": ["text/plain", "text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["text", "csv", "pdf"]},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CalculateRequest"}}
                ],
                "responses": {
                    "200": {"description": "Rendered file", "schema": {"type": "file"}},
                    "400": {"description": "Invalid payload or format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "PeriodRequest": {
            "type": "object",
            "properties": {
                "quiz_scores": {"type": "array", "maxItems": 2, "items": {"type": "number", "x-nullable": true}},
                "quiz_max_scores": {"type": "array", "maxItems": 2, "items": {"type": "number", "x-nullable": true}},
                "exam_score": {"type": "number", "x-nullable": true},
                "exam_max_score": {"type": "number", "x-nullable": true},
                "attendance": {"type": "number", "minimum": 0, "maximum": 10, "x-nullable": true},
                "problem_set": {"type": "number", "minimum": 0, "maximum": 10, "x-nullable": true}
            }
        },
        "CalculateRequest": {
            "type": "object",
            "properties": {
                "midterm": {"$ref": "#/definitions/PeriodRequest"},
                "finals": {"$ref": "#/definitions/PeriodRequest"},
                "target": {"type": "number", "minimum": 0, "maximum": 100}
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
