package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Classroom Portal",
        "description": "Lectures, assignments, submissions and grading for admins and students.",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Login, signup and logout"},
        {"name": "Dashboard", "description": "Role-specific landing view"},
        {"name": "Lectures", "description": "Admin lecture uploads"},
        {"name": "Assignments", "description": "Admin assignment uploads and submission overview"},
        {"name": "Submissions", "description": "Student submissions and grading"},
        {"name": "Export", "description": "Gradebook downloads"},
        {"name": "Uploads", "description": "Stored file retrieval"}
    ],
    "paths": {
        "/health": {
            "get": {"summary": "Health check", "responses": {"200": {"description": "OK"}}}
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Collection store unavailable"}
                }
            }
        },
        "/": {
            "get": {
                "tags": ["Auth"],
                "summary": "Login view",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "302": {"description": "Already signed in, redirect to /dashboard"}
                }
            },
            "post": {
                "tags": ["Auth"],
                "summary": "Log in",
                "consumes": ["application/x-www-form-urlencoded"],
                "parameters": [
                    {"name": "email", "in": "formData", "required": true, "type": "string"},
                    {"name": "password", "in": "formData", "required": true, "type": "string"}
                ],
                "responses": {
                    "303": {"description": "Redirect to /dashboard"},
                    "400": {"description": "Missing fields", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid email or password", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/signup": {
            "get": {
                "tags": ["Auth"],
                "summary": "Signup view",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Auth"],
                "summary": "Create an account",
                "consumes": ["application/x-www-form-urlencoded"],
                "parameters": [
                    {"name": "name", "in": "formData", "required": true, "type": "string"},
                    {"name": "email", "in": "formData", "required": true, "type": "string"},
                    {"name": "password", "in": "formData", "required": true, "type": "string"},
                    {"name": "role", "in": "formData", "required": true, "type": "string", "enum": ["Admin", "Student"]}
                ],
                "responses": {
                    "303": {"description": "Redirect to / on success, /signup when the email is taken"},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/logout": {
            "get": {"tags": ["Auth"], "summary": "Log out", "responses": {"303": {"description": "Redirect to /"}}}
        },
        "/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Dashboard",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "302": {"description": "No session, redirect to /"}
                }
            }
        },
        "/admin/lectures": {
            "get": {
                "tags": ["Lectures"],
                "summary": "List lectures",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Lectures"],
                "summary": "Upload a lecture",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "title", "in": "formData", "required": true, "type": "string"},
                    {"name": "description", "in": "formData", "type": "string"},
                    {"name": "file", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {
                    "303": {"description": "Redirect to /admin/lectures"},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/assignments": {
            "get": {
                "tags": ["Assignments"],
                "summary": "Assignments and annotated submissions",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Assignments"],
                "summary": "Upload an assignment",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "title", "in": "formData", "required": true, "type": "string"},
                    {"name": "description", "in": "formData", "type": "string"},
                    {"name": "file", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {
                    "303": {"description": "Redirect to /admin/assignments"},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/grade/{submission_id}": {
            "post": {
                "tags": ["Submissions"],
                "summary": "Grade a submission",
                "consumes": ["application/x-www-form-urlencoded"],
                "parameters": [
                    {"name": "submission_id", "in": "path", "required": true, "type": "integer"},
                    {"name": "grade", "in": "formData", "required": true, "type": "string"}
                ],
                "responses": {"303": {"description": "Redirect to /admin/assignments"}}
            }
        },
        "/admin/gradebook": {
            "get": {
                "tags": ["Export"],
                "summary": "Download the gradebook",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Gradebook file"},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/student/submit/{assignment_id}": {
            "post": {
                "tags": ["Submissions"],
                "summary": "Submit an assignment",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "assignment_id", "in": "path", "required": true, "type": "integer"},
                    {"name": "file", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {"303": {"description": "Redirect to /dashboard"}}
            }
        },
        "/uploads/{filename}": {
            "get": {
                "tags": ["Uploads"],
                "summary": "Download an uploaded file",
                "parameters": [
                    {"name": "filename", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File contents"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "Flash": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {
                    "type": "object",
                    "properties": {
                        "flashes": {"type": "array", "items": {"$ref": "#/definitions/Flash"}}
                    }
                }
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
