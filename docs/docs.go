// Package docs holds the swagger document served under /swagger. It mirrors
// the handler annotations in api/controllers; swag init regenerates it.
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
        "/api/auth/login": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "auth"
                ],
                "summary": "Log in with a judge code or the admin code",
                "parameters": [
                    {
                        "description": "Login code",
                        "name": "login",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.LoginRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.LoginResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    },
                    "429": {
                        "description": "Too Many Requests",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/auth/session": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "auth"
                ],
                "summary": "Current session",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.SessionResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/auth/logout": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "auth"
                ],
                "summary": "Clear the session cookie",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.SuccessResponse"
                        }
                    }
                }
            }
        },
        "/api/criteria": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "criteria"
                ],
                "summary": "Get all criteria",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/models.CriterionResponse"
                            }
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    }
                }
            },
            "post": {
                "description": "maxScore is required; weight is stored for display and used as maxScore when maxScore is absent.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "criteria"
                ],
                "summary": "Create a criterion",
                "parameters": [
                    {
                        "description": "Criterion",
                        "name": "criterion",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.CriterionCreateRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/models.CriterionResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/criteria/{id}": {
            "delete": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "criteria"
                ],
                "summary": "Delete a criterion",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Criterion ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.SuccessResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/health": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "health"
                ],
                "summary": "Check the database connection",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.HealthResponse"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/models.HealthResponse"
                        }
                    }
                }
            }
        },
        "/api/judges": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "judges"
                ],
                "summary": "List judges with their login codes",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/models.JudgeResponse"
                            }
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    }
                }
            },
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "judges"
                ],
                "summary": "Create a judge with a generated login code",
                "parameters": [
                    {
                        "description": "Judge",
                        "name": "judge",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.JudgeCreateRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/models.JudgeResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/judges/{id}": {
            "delete": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "judges"
                ],
                "summary": "Delete a judge and their ratings",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Judge ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.SuccessResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/final-scores": {
            "get": {
                "description": "Teams scored by every judge, ranked by their judge-averaged percentage of the total possible points.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "results"
                ],
                "summary": "Ranked leaderboard",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/scoring.FinalScore"
                            }
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/scores": {
            "get": {
                "description": "With judgeId and teamId returns one rating or null, with judgeId only that judge's ratings, otherwise every rating. Judges can only read their own.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "scores"
                ],
                "summary": "Read submitted scores",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Judge ID",
                        "name": "judgeId",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Team ID",
                        "name": "teamId",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/models.RatingResponse"
                            }
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    }
                }
            },
            "post": {
                "description": "Judges always submit as themselves; admins must name the judge. Each score must belong to a known criterion and lie between 0 and its max score.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "scores"
                ],
                "summary": "Submit or replace a judge's scores for a team",
                "parameters": [
                    {
                        "description": "Scores",
                        "name": "scores",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.ScoreSubmitRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/models.SuccessResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/active-team": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "active-team"
                ],
                "summary": "Get the active team",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.ActiveTeamResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    }
                }
            },
            "put": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "active-team"
                ],
                "summary": "Set or clear the active team",
                "parameters": [
                    {
                        "description": "Team ID or null",
                        "name": "state",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.ActiveTeamRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.ActiveTeamResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/teams": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "teams"
                ],
                "summary": "Get all teams in creation order",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/models.TeamResponse"
                            }
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    }
                }
            },
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "teams"
                ],
                "summary": "Create a team",
                "parameters": [
                    {
                        "description": "Team",
                        "name": "team",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.TeamCreateRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/models.TeamResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/teams/{id}": {
            "delete": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "teams"
                ],
                "summary": "Delete a team and its ratings",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Team ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.SuccessResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/models.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "models.ErrorResponse": {"type": "object", "properties": {"error": {"type": "string"}}},
        "models.SuccessResponse": {"type": "object", "properties": {"success": {"type": "boolean"}}},
        "models.LoginRequest": {"type": "object", "required": ["loginCode"], "properties": {"loginCode": {"type": "string"}}},
        "models.JudgeIdentity": {"type": "object", "properties": {"id": {"type": "string"}, "name": {"type": "string"}}},
        "models.LoginResponse": {"type": "object", "properties": {"success": {"type": "boolean"}, "role": {"type": "string"}, "user": {"$ref": "#/definitions/models.JudgeIdentity"}}},
        "models.SessionResponse": {"type": "object", "properties": {"role": {"type": "string"}, "sub": {"type": "string"}, "name": {"type": "string"}, "exp": {"type": "integer"}}},
        "models.TeamCreateRequest": {"type": "object", "required": ["name"], "properties": {"name": {"type": "string"}}},
        "models.TeamResponse": {"type": "object", "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "createdAt": {"type": "string"}}},
        "models.JudgeCreateRequest": {"type": "object", "required": ["name"], "properties": {"name": {"type": "string"}}},
        "models.JudgeResponse": {"type": "object", "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "secretId": {"type": "string"}, "createdAt": {"type": "string"}}},
        "models.CriterionCreateRequest": {"type": "object", "required": ["name"], "properties": {"name": {"type": "string"}, "maxScore": {"type": "number"}, "weight": {"type": "number"}}},
        "models.CriterionResponse": {"type": "object", "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "maxScore": {"type": "number"}, "weight": {"type": "number"}}},
        "models.ScoreSubmitRequest": {"type": "object", "required": ["teamId", "scores"], "properties": {"teamId": {"type": "string"}, "judgeId": {"type": "string"}, "scores": {"type": "object", "additionalProperties": {"type": "number"}}}},
        "models.RatingResponse": {"type": "object", "properties": {"teamId": {"type": "string"}, "judgeId": {"type": "string"}, "scores": {"type": "object", "additionalProperties": {"type": "number"}}}},
        "models.ActiveTeamRequest": {"type": "object", "properties": {"teamId": {"type": "string"}}},
        "models.ActiveTeamResponse": {"type": "object", "properties": {"teamId": {"type": "string"}}},
        "models.HealthResponse": {"type": "object", "properties": {"success": {"type": "boolean"}, "message": {"type": "string"}, "timestamp": {"type": "string"}}},
        "scoring.FinalScore": {"type": "object", "properties": {"teamId": {"type": "string"}, "teamName": {"type": "string"}, "weightedScore": {"type": "number"}, "rank": {"type": "integer"}}}
    },
    "securityDefinitions": {
        "SessionCookie": {"type": "apiKey", "name": "auth_token", "in": "cookie"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "",
	Schemes:          []string{},
	Title:            "Hackathon Judging API",
	Description:      "Backend API for judges scoring hackathon teams and the admin leaderboard",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
