package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "ClassDeck API",
        "description": "Classroom dashboard backend: lesson boards, bell-schedule detection, and public share views",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {"name": "Auth", "description": "Session sign-in and sign-out"},
        {"name": "Board", "description": "Lesson board editing and autosave"},
        {"name": "Settings", "description": "Teacher preferences"},
        {"name": "Schedule", "description": "Bell-schedule detection"},
        {"name": "Generate", "description": "AI lesson content generation"},
        {"name": "Classroom", "description": "External classroom integration"},
        {"name": "Share", "description": "Public read-only agenda views"},
        {"name": "Exports", "description": "Asynchronous board PDF exports"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/auth/signin": {
            "post": {
                "tags": ["Auth"],
                "summary": "Exchange an upstream identity for a session token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SignInRequest"}}
                ],
                "responses": {
                    "200": {"description": "Session token", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/signout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Discard the current session",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "Signed out"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Auth"],
                "summary": "Current session profile",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/board/selection": {
            "put": {
                "tags": ["Board"],
                "summary": "Select the board for a date and class period",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SelectBoardRequest"}}
                ],
                "responses": {
                    "200": {"description": "Board state", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/board": {
            "get": {
                "tags": ["Board"],
                "summary": "Current board state and day schedule",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Board state", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/board/sections/{key}": {
            "put": {
                "tags": ["Board"],
                "summary": "Replace a section's rich text",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "key", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EditSectionRequest"}}
                ],
                "responses": {
                    "200": {"description": "Board state", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Unknown section", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/board/sections/{key}/media": {
            "put": {
                "tags": ["Board"],
                "summary": "Attach media to a section",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "key", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AttachMediaRequest"}}
                ],
                "responses": {
                    "200": {"description": "Board state", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid media URL", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Board"],
                "summary": "Detach media from a section",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "key", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Board state", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/board/layout": {
            "put": {
                "tags": ["Board"],
                "summary": "Adjust grid layout weights",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Board state", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/board/theme": {
            "put": {
                "tags": ["Board"],
                "summary": "Switch the board theme",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateThemeRequest"}}
                ],
                "responses": {
                    "200": {"description": "Board state", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/board/schedule-override": {
            "put": {
                "tags": ["Board"],
                "summary": "Pin or clear the day's schedule type",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Board state", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/board/flush": {
            "post": {
                "tags": ["Board"],
                "summary": "Persist pending edits immediately",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Board state", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Save failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/settings": {
            "get": {
                "tags": ["Settings"],
                "summary": "Teacher settings with defaults applied",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Settings", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "patch": {
                "tags": ["Settings"],
                "summary": "Update teacher settings",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Settings", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedule": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Full day schedule for a date",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "date", "in": "query", "required": true, "type": "string"},
                    {"name": "room", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Day schedule", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedule/classify": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Classify a date against the school calendar",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "date", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Classification", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/generate/section": {
            "post": {
                "tags": ["Generate"],
                "summary": "Generate one section's content",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateSectionRequest"}}
                ],
                "responses": {
                    "200": {"description": "Generated content", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Generator unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/generate/board": {
            "post": {
                "tags": ["Generate"],
                "summary": "Generate a full lesson plan across all sections",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Board state", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Generator unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classroom/courses": {
            "get": {
                "tags": ["Classroom"],
                "summary": "List the teacher's courses",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Courses", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "No classroom authorization", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classroom/courses/{courseId}/coursework": {
            "get": {
                "tags": ["Classroom"],
                "summary": "List coursework for a course",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "courseId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Coursework", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classroom/courses/{courseId}/announcements": {
            "post": {
                "tags": ["Classroom"],
                "summary": "Announce a board's agenda to a course",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "courseId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Announced"},
                    "404": {"description": "No board saved for that date", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/share/{teacherId}/{classId}/{date}": {
            "get": {
                "tags": ["Share"],
                "summary": "Public read-only agenda view",
                "parameters": [
                    {"name": "teacherId", "in": "path", "required": true, "type": "string"},
                    {"name": "classId", "in": "path", "required": true, "type": "string"},
                    {"name": "date", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Agenda", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No agenda posted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports": {
            "post": {
                "tags": ["Exports"],
                "summary": "Queue a board PDF export",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "202": {"description": "Job queued", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports/jobs/{id}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export job status",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Job", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown job", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports/download": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download a finished export",
                "parameters": [
                    {"name": "token", "in": "query", "required": true, "type": "string"}
                ],
                "produces": ["application/pdf"],
                "responses": {
                    "200": {"description": "PDF file"},
                    "403": {"description": "Invalid or expired token", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "SignInRequest": {
            "type": "object",
            "required": ["teacherId", "email"],
            "properties": {
                "teacherId": {"type": "string"},
                "email": {"type": "string"},
                "displayName": {"type": "string"},
                "classroomToken": {"type": "string"}
            }
        },
        "SelectBoardRequest": {
            "type": "object",
            "required": ["date", "classId"],
            "properties": {
                "date": {"type": "string"},
                "classId": {"type": "string"}
            }
        },
        "EditSectionRequest": {
            "type": "object",
            "properties": {
                "text": {"type": "string"}
            }
        },
        "AttachMediaRequest": {
            "type": "object",
            "required": ["kind", "url"],
            "properties": {
                "kind": {"type": "string"},
                "url": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "UpdateThemeRequest": {
            "type": "object",
            "required": ["themeId"],
            "properties": {
                "themeId": {"type": "string"}
            }
        },
        "GenerateSectionRequest": {
            "type": "object",
            "required": ["topic", "sectionKey"],
            "properties": {
                "topic": {"type": "string"},
                "subject": {"type": "string"},
                "sectionKey": {"type": "string"}
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
