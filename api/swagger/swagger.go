package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Parecer API",
        "description": "Observation log and AI-drafted descriptive reports for early-childhood teachers",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http",
        "https"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"BearerAuth": []}],
    "tags": [
        {"name": "Pareceres", "description": "Report draft generation and editing"},
        {"name": "Webhook", "description": "Automation pass-through"},
        {"name": "Alunos", "description": "Students of the caller's classes"},
        {"name": "Turmas", "description": "Classes owned by the caller"},
        {"name": "Registros", "description": "Observation log, CSV export and media"},
        {"name": "Marcos", "description": "Developmental milestones"},
        {"name": "BNCC", "description": "Curriculum objective catalogue"},
        {"name": "Professor", "description": "Writing preferences"},
        {"name": "Dashboard", "description": "Class coverage indicators"}
    ],
    "paths": {
        "/gerar-parecer": {
            "post": {
                "tags": ["Pareceres"],
                "summary": "Generate a report draft",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateParecerRequest"}}
                ],
                "responses": {
                    "200": {"description": "Draft stored", "schema": {"$ref": "#/definitions/GenerateParecerResponse"}},
                    "403": {"description": "Class belongs to another teacher", "schema": {"$ref": "#/definitions/LegacyError"}},
                    "404": {"description": "Unknown student", "schema": {"$ref": "#/definitions/LegacyError"}},
                    "500": {"description": "Model, audio or storage failure", "schema": {"$ref": "#/definitions/LegacyError"}}
                }
            }
        },
        "/webhook": {
            "post": {
                "tags": ["Webhook"],
                "summary": "Relay a JSON body to the automation webhook",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "Upstream JSON, relayed with the upstream status"},
                    "401": {"description": "Missing or invalid token", "schema": {"$ref": "#/definitions/LegacyError"}},
                    "413": {"description": "Body larger than 1 MiB", "schema": {"$ref": "#/definitions/LegacyError"}},
                    "500": {"description": "Webhook not configured or unreachable", "schema": {"$ref": "#/definitions/LegacyError"}}
                }
            }
        },
        "/pareceres/{id}": {
            "get": {
                "tags": ["Pareceres"],
                "summary": "Get a report draft",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "put": {
                "tags": ["Pareceres"],
                "summary": "Edit a report draft",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateParecerRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/pareceres/{id}/pdf": {
            "get": {
                "tags": ["Pareceres"],
                "summary": "Download a report draft as PDF",
                "produces": ["application/pdf"],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "PDF file"}}
            }
        },
        "/alunos": {
            "get": {
                "tags": ["Alunos"],
                "summary": "List students",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "turma_id", "in": "query", "type": "string"},
                    {"name": "ativo", "in": "query", "type": "boolean"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "sort", "in": "query", "type": "string"},
                    {"name": "order", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Alunos"],
                "summary": "Create student",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/alunos/{id}/pareceres": {
            "get": {
                "tags": ["Pareceres"],
                "summary": "List a student's report drafts",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/alunos/{id}/marcos": {
            "get": {
                "tags": ["Marcos"],
                "summary": "List milestones of a student",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/turmas": {
            "get": {
                "tags": ["Turmas"],
                "summary": "List the caller's classes",
                "parameters": [{"name": "ativo", "in": "query", "type": "boolean"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/registros": {
            "get": {
                "tags": ["Registros"],
                "summary": "List observation records",
                "parameters": [
                    {"name": "aluno_id", "in": "query", "type": "string"},
                    {"name": "de", "in": "query", "type": "string", "format": "date"},
                    {"name": "ate", "in": "query", "type": "string", "format": "date"},
                    {"name": "tipo", "in": "query", "type": "string", "enum": ["texto", "foto", "audio", "video"]},
                    {"name": "evidencia", "in": "query", "type": "boolean"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/registros/exportar": {
            "get": {
                "tags": ["Registros"],
                "summary": "Export observation records as CSV",
                "produces": ["text/csv"],
                "responses": {"200": {"description": "CSV file"}}
            }
        },
        "/registros/midia": {
            "post": {
                "tags": ["Registros"],
                "summary": "Upload a photo, audio or video",
                "consumes": ["multipart/form-data"],
                "parameters": [{"name": "file", "in": "formData", "required": true, "type": "file"}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/professor/perfil": {
            "get": {
                "tags": ["Professor"],
                "summary": "Get the caller's profile",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/dashboard/turmas/{id}/alunos-em-risco": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Students with few recent observations",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/dashboard/turmas/{id}/cobertura-bncc": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Observation count per BNCC experience field",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        }
    },
    "definitions": {
        "GenerateParecerRequest": {
            "type": "object",
            "properties": {
                "aluno_id": {"type": "string"},
                "turma_id": {"type": "string"},
                "periodo_inicio": {"type": "string", "format": "date"},
                "periodo_fim": {"type": "string", "format": "date"},
                "professor_instrucoes": {"type": "string"},
                "audio_url": {"type": "string"}
            }
        },
        "Parecer": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "aluno_id": {"type": "string"},
                "turma_id": {"type": "string"},
                "referencia_periodo": {"type": "string"},
                "conteudo_gerado": {"type": "string"},
                "conteudo_editado": {"type": "string"},
                "status": {"type": "string", "enum": ["rascunho", "revisao", "finalizado"]},
                "created_at": {"type": "string", "format": "date-time"},
                "updated_at": {"type": "string", "format": "date-time"}
            }
        },
        "GenerateParecerResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "parecer": {"$ref": "#/definitions/Parecer"}
            }
        },
        "UpdateParecerRequest": {
            "type": "object",
            "properties": {
                "conteudo_editado": {"type": "string"},
                "status": {"type": "string", "enum": ["rascunho", "revisao", "finalizado"]}
            }
        },
        "StudentRequest": {
            "type": "object",
            "properties": {
                "nome": {"type": "string"},
                "data_nascimento": {"type": "string", "format": "date"},
                "turma_id": {"type": "string"},
                "ativo": {"type": "boolean"}
            },
            "required": ["nome", "data_nascimento", "turma_id"]
        },
        "LegacyError": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
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
