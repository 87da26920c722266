// Package docs Travel Map API
//
// Travel Map serves a personal travel blog as an interactive map: articles are
// grouped by city, drawn as organic blob shapes sized by word count, and
// filterable by country, year and free text.
//
//	Schemes: http, https
//	Host: localhost:8080
//	BasePath: /api/v1
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs

import "github.com/swaggo/swag"

// @title Travel Map API
// @version 1.0
// @description A travel blog rendered as an interactive map of story blobs
// @termsOfService http://swagger.io/terms/

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

func init() {
	swag.Register(swag.Name, &swag.Spec{
		InfoInstanceName: "swagger",
		SwaggerTemplate:  docTemplate,
	})
}

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Travel Map API",
        "description": "A travel blog rendered as an interactive map of story blobs",
        "version": "1.0.0",
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        }
    },
    "host": "localhost:8080",
    "basePath": "/api/v1",
    "schemes": ["http", "https"],
    "consumes": ["application/json"],
    "produces": ["application/json"],
    "paths": {
        "/health": {
            "get": {
                "description": "Health check endpoint",
                "summary": "Health Check",
                "operationId": "healthCheck",
                "responses": {
                    "200": {
                        "description": "Service is healthy",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "status": {
                                    "type": "string",
                                    "example": "healthy"
                                },
                                "dataset_ready": {
                                    "type": "boolean"
                                },
                                "clipping_enabled": {
                                    "type": "boolean"
                                },
                                "cache_entries": {
                                    "type": "integer"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/meta": {
            "get": {
                "description": "Get blog metadata and dataset status. Always answers 200; when the dataset failed to load the payload carries the error message.",
                "summary": "Get Blog Metadata",
                "operationId": "getMeta",
                "responses": {
                    "200": {
                        "description": "Blog metadata",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "blogTitle": {
                                    "type": "string"
                                },
                                "tagline": {
                                    "type": "string"
                                },
                                "ready": {
                                    "type": "boolean"
                                },
                                "articleCount": {
                                    "type": "integer"
                                },
                                "clippingEnabled": {
                                    "type": "boolean"
                                },
                                "error": {
                                    "type": "string",
                                    "description": "Present when the last dataset load failed"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/articles": {
            "get": {
                "description": "Get article cards matching the filters. All filters combine with AND semantics; omitted filters match everything.",
                "summary": "List Articles",
                "operationId": "getArticles",
                "parameters": [
                    {
                        "name": "country",
                        "in": "query",
                        "required": false,
                        "type": "string",
                        "description": "Exact country name"
                    },
                    {
                        "name": "year",
                        "in": "query",
                        "required": false,
                        "type": "string",
                        "description": "Publication year"
                    },
                    {
                        "name": "q",
                        "in": "query",
                        "required": false,
                        "type": "string",
                        "description": "Case-insensitive text search over title, city, country, content and tags"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Matching articles in dataset order",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "articles": {
                                    "type": "array",
                                    "items": {
                                        "$ref": "#/definitions/ArticleCard"
                                    }
                                },
                                "count": {
                                    "type": "integer"
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Bad request - oversized filter value"
                    },
                    "503": {
                        "description": "Article dataset unavailable"
                    }
                }
            }
        },
        "/articles/{id}": {
            "get": {
                "description": "Get a single article card by id",
                "summary": "Get Article",
                "operationId": "getArticle",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Article id"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Article card",
                        "schema": {
                            "$ref": "#/definitions/ArticleCard"
                        }
                    },
                    "400": {
                        "description": "Bad request - malformed article id"
                    },
                    "404": {
                        "description": "Article not found"
                    },
                    "503": {
                        "description": "Article dataset unavailable"
                    }
                }
            }
        },
        "/filters": {
            "get": {
                "description": "Get the available filter options: countries alphabetically, years newest first",
                "summary": "Get Filter Options",
                "operationId": "getFilters",
                "responses": {
                    "200": {
                        "description": "Filter options",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "countries": {
                                    "type": "array",
                                    "items": {
                                        "type": "string"
                                    }
                                },
                                "years": {
                                    "type": "array",
                                    "items": {
                                        "type": "string"
                                    }
                                }
                            }
                        }
                    },
                    "503": {
                        "description": "Article dataset unavailable"
                    }
                }
            }
        },
        "/map/blobs": {
            "get": {
                "description": "Get the map view for the filtered articles: one blob feature per city, a country legend and the initial viewport. Blob geometry is regenerated on every call.",
                "summary": "Get Map Blobs",
                "operationId": "getMapBlobs",
                "parameters": [
                    {
                        "name": "country",
                        "in": "query",
                        "required": false,
                        "type": "string",
                        "description": "Exact country name"
                    },
                    {
                        "name": "year",
                        "in": "query",
                        "required": false,
                        "type": "string",
                        "description": "Publication year"
                    },
                    {
                        "name": "q",
                        "in": "query",
                        "required": false,
                        "type": "string",
                        "description": "Case-insensitive text search"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Map view",
                        "schema": {
                            "$ref": "#/definitions/MapView"
                        }
                    },
                    "400": {
                        "description": "Bad request - oversized filter value"
                    },
                    "503": {
                        "description": "Article dataset unavailable"
                    }
                }
            }
        },
        "/dataset/refresh": {
            "post": {
                "description": "Reload the article dataset from its source. On failure the previous dataset keeps serving.",
                "summary": "Refresh Dataset",
                "operationId": "refreshDataset",
                "responses": {
                    "200": {
                        "description": "Dataset refreshed",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "message": {
                                    "type": "string",
                                    "example": "Dataset refreshed successfully"
                                },
                                "articles": {
                                    "type": "integer"
                                }
                            }
                        }
                    },
                    "500": {
                        "description": "Reload failed"
                    }
                }
            }
        }
    },
    "definitions": {
        "ArticleCard": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string",
                    "description": "Article id"
                },
                "anchor": {
                    "type": "string",
                    "description": "DOM anchor of the article card"
                },
                "title": {
                    "type": "string"
                },
                "city": {
                    "type": "string"
                },
                "country": {
                    "type": "string"
                },
                "coordinates": {
                    "type": "array",
                    "items": {
                        "type": "number"
                    },
                    "description": "[latitude, longitude]"
                },
                "date": {
                    "type": "string",
                    "description": "ISO date (YYYY-MM-DD)"
                },
                "displayDate": {
                    "type": "string",
                    "description": "Human-readable date"
                },
                "year": {
                    "type": "integer"
                },
                "wordCount": {
                    "type": "integer"
                },
                "readingTime": {
                    "type": "integer",
                    "description": "Estimated reading time in minutes"
                },
                "content": {
                    "type": "string",
                    "description": "Article body HTML"
                },
                "excerpt": {
                    "type": "string",
                    "description": "Plain-text excerpt"
                },
                "images": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "tags": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "mood": {
                    "type": "string"
                }
            }
        },
        "MapView": {
            "type": "object",
            "properties": {
                "blobs": {
                    "type": "object",
                    "description": "GeoJSON FeatureCollection, one MultiPolygon feature per city"
                },
                "legend": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/LegendEntry"
                    }
                },
                "viewport": {
                    "$ref": "#/definitions/Viewport"
                },
                "clipped": {
                    "type": "boolean",
                    "description": "Whether country boundary clipping was available"
                },
                "cities": {
                    "type": "integer",
                    "description": "Number of city features"
                }
            }
        },
        "LegendEntry": {
            "type": "object",
            "properties": {
                "country": {
                    "type": "string"
                },
                "color": {
                    "type": "string",
                    "description": "Hex color"
                },
                "articleCount": {
                    "type": "integer"
                }
            }
        },
        "Viewport": {
            "type": "object",
            "properties": {
                "center": {
                    "type": "array",
                    "items": {
                        "type": "number"
                    },
                    "description": "[latitude, longitude]"
                },
                "zoom": {
                    "type": "integer"
                },
                "minZoom": {
                    "type": "integer"
                },
                "maxZoom": {
                    "type": "integer"
                },
                "southWest": {
                    "type": "array",
                    "items": {
                        "type": "number"
                    }
                },
                "northEast": {
                    "type": "array",
                    "items": {
                        "type": "number"
                    }
                }
            }
        }
    },
    "tags": [
        {
            "name": "Health",
            "description": "Health check endpoints"
        },
        {
            "name": "Articles",
            "description": "Article listing and filtering"
        },
        {
            "name": "Map",
            "description": "Blob map rendering"
        },
        {
            "name": "Dataset",
            "description": "Dataset lifecycle"
        }
    ]
}`
