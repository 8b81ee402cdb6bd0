package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Barber Bliss Booking API",
        "description": "Multi-tenant barbershop scheduling: working hours, services, slot availability and conflict-safe booking.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": ["http", "https"],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Authentication", "description": "Login and current user"},
        {"name": "Schedules", "description": "Weekly working hours with breaks"},
        {"name": "Services", "description": "Service catalogue per barber"},
        {"name": "Slots", "description": "Bookable start times"},
        {"name": "Appointments", "description": "Booking and agenda"},
        {"name": "Public", "description": "Unauthenticated booking page"},
        {"name": "System", "description": "Operational endpoints"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Current user",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/barbers/{barberId}/schedule": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Weekly schedule",
                "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/barberId"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "put": {
                "tags": ["Schedules"],
                "summary": "Replace weekly schedule",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"$ref": "#/parameters/barberId"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReplaceScheduleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/barbers/{barberId}/services": {
            "get": {
                "tags": ["Services"],
                "summary": "List services",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"$ref": "#/parameters/barberId"},
                    {"name": "include_inactive", "in": "query", "type": "boolean"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Services"],
                "summary": "Create service",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"$ref": "#/parameters/barberId"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ServiceRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/barbers/{barberId}/services/{id}": {
            "put": {
                "tags": ["Services"],
                "summary": "Update service",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"$ref": "#/parameters/barberId"},
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ServiceRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["Services"],
                "summary": "Deactivate service",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"$ref": "#/parameters/barberId"},
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/barbers/{barberId}/slots": {
            "get": {
                "tags": ["Slots"],
                "summary": "Available slots",
                "description": "The owning barber and admins see booked and past slots greyed out. Clients only see bookable slots.",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"$ref": "#/parameters/barberId"},
                    {"$ref": "#/parameters/date"},
                    {"$ref": "#/parameters/serviceId"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/SlotList"}}}
            }
        },
        "/barbers/{barberId}/appointments": {
            "get": {
                "tags": ["Appointments"],
                "summary": "Barber agenda",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"$ref": "#/parameters/barberId"},
                    {"name": "date", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string", "enum": ["scheduled", "completed", "cancelled", "no_show"]},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Appointments"],
                "summary": "Book appointment",
                "description": "A 409 SLOT_TAKEN response carries meta.available_slots.",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"$ref": "#/parameters/barberId"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BookAppointmentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Start time not offered", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Slot taken", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/barbers/{barberId}/agenda/export": {
            "get": {
                "tags": ["Appointments"],
                "summary": "Export agenda",
                "produces": ["text/csv", "application/pdf"],
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"$ref": "#/parameters/barberId"},
                    {"$ref": "#/parameters/date"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {"200": {"description": "File", "schema": {"type": "file"}}}
            }
        },
        "/me/appointments": {
            "get": {
                "tags": ["Appointments"],
                "summary": "Own appointments",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/appointments/{id}": {
            "get": {
                "tags": ["Appointments"],
                "summary": "Get appointment",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/appointments/{id}/status": {
            "patch": {
                "tags": ["Appointments"],
                "summary": "Close appointment",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateAppointmentStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Already closed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/public/barbers/{slug}": {
            "get": {
                "tags": ["Public"],
                "summary": "Public barber profile",
                "parameters": [{"$ref": "#/parameters/slug"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/public/barbers/{slug}/slots": {
            "get": {
                "tags": ["Public"],
                "summary": "Public slots",
                "description": "Past slots are never listed. Booked slots appear with is_booked=true only when show_booked=true.",
                "parameters": [
                    {"$ref": "#/parameters/slug"},
                    {"$ref": "#/parameters/date"},
                    {"$ref": "#/parameters/serviceId"},
                    {"name": "show_booked", "in": "query", "type": "boolean"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/PublicSlotList"}}}
            }
        },
        "/public/barbers/{slug}/appointments": {
            "post": {
                "tags": ["Public"],
                "summary": "Public booking",
                "parameters": [
                    {"$ref": "#/parameters/slug"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PublicBookingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Slot taken", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/system/metrics": {
            "get": {
                "tags": ["System"],
                "summary": "Booking metrics summary",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        }
    },
    "parameters": {
        "barberId": {"name": "barberId", "in": "path", "required": true, "type": "string"},
        "slug": {"name": "slug", "in": "path", "required": true, "type": "string"},
        "date": {"name": "date", "in": "query", "required": true, "type": "string", "format": "date"},
        "serviceId": {"name": "service_id", "in": "query", "required": true, "type": "string"}
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "ScheduleDay": {
            "type": "object",
            "required": ["day_of_week", "start_time", "end_time"],
            "properties": {
                "day_of_week": {"type": "integer", "minimum": 0, "maximum": 6},
                "start_time": {"type": "string", "example": "09:00"},
                "end_time": {"type": "string", "example": "18:00"},
                "is_active": {"type": "boolean"},
                "has_break": {"type": "boolean"},
                "break_start": {"type": "string", "example": "12:00"},
                "break_end": {"type": "string", "example": "13:00"},
                "break_tolerance_enabled": {"type": "boolean"},
                "break_tolerance_minutes": {"type": "integer"}
            }
        },
        "ReplaceScheduleRequest": {
            "type": "object",
            "properties": {
                "days": {"type": "array", "items": {"$ref": "#/definitions/ScheduleDay"}}
            }
        },
        "ServiceRequest": {
            "type": "object",
            "required": ["name", "duration_minutes"],
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"},
                "duration_minutes": {"type": "integer"},
                "price": {"type": "number"},
                "active": {"type": "boolean"}
            }
        },
        "BookAppointmentRequest": {
            "type": "object",
            "required": ["service_id", "date", "start_time"],
            "properties": {
                "service_id": {"type": "string"},
                "date": {"type": "string", "format": "date"},
                "start_time": {"type": "string", "example": "10:00"},
                "client_name": {"type": "string"},
                "client_phone": {"type": "string"},
                "notes": {"type": "string"}
            }
        },
        "PublicBookingRequest": {
            "type": "object",
            "required": ["service_id", "date", "start_time", "client_name", "client_phone"],
            "properties": {
                "service_id": {"type": "string"},
                "date": {"type": "string", "format": "date"},
                "start_time": {"type": "string", "example": "10:00"},
                "client_name": {"type": "string"},
                "client_phone": {"type": "string"},
                "notes": {"type": "string"}
            }
        },
        "UpdateAppointmentStatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string", "enum": ["completed", "cancelled", "no_show"]}
            }
        },
        "Slot": {
            "type": "object",
            "properties": {
                "time": {"type": "string"},
                "available": {"type": "boolean"}
            }
        },
        "PublicSlot": {
            "type": "object",
            "properties": {
                "time": {"type": "string"},
                "available": {"type": "boolean"},
                "is_booked": {"type": "boolean"}
            }
        },
        "SlotList": {
            "type": "object",
            "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/Slot"}}}
        },
        "PublicSlotList": {
            "type": "object",
            "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/PublicSlot"}}}
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
                "pagination": {"$ref": "#/definitions/Pagination"},
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
