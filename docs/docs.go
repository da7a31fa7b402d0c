// Package docs 由 swag init -g cmd/server/main.go -o docs 重新生成
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
        "/auth/register": {"post": {"tags": ["Auth"], "summary": "注册", "responses": {"201": {"description": "Created"}}}},
        "/auth/login": {"post": {"tags": ["Auth"], "summary": "登录", "responses": {"200": {"description": "OK"}}}},
        "/auth/logout": {"post": {"security": [{"BearerAuth": []}], "tags": ["Auth"], "summary": "登出", "responses": {"204": {"description": "No Content"}}}},
        "/user": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["User"], "summary": "获取当前用户", "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["User"], "summary": "更新当前用户", "responses": {"200": {"description": "OK"}}}
        },
        "/profile/{username}": {"get": {"tags": ["Profile"], "summary": "获取用户资料", "responses": {"200": {"description": "OK"}}}},
        "/profile/{username}/follow": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["Profile"], "summary": "关注用户", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Profile"], "summary": "取消关注", "responses": {"200": {"description": "OK"}}}
        },
        "/article": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Article"], "summary": "文章列表", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Article"], "summary": "创建文章", "responses": {"201": {"description": "Created"}}}
        },
        "/article/feed": {"get": {"security": [{"BearerAuth": []}], "tags": ["Article"], "summary": "关注的作者发布的文章", "responses": {"200": {"description": "OK"}}}},
        "/article/{slug}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Article"], "summary": "文章详情", "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["Article"], "summary": "更新文章（仅作者）", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Article"], "summary": "删除文章（仅作者）", "responses": {"204": {"description": "No Content"}}}
        },
        "/article/{slug}/favorite": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["Favorite"], "summary": "收藏文章", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Favorite"], "summary": "取消收藏", "responses": {"200": {"description": "OK"}}}
        },
        "/article/{slug}/comment": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Comment"], "summary": "评论列表", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Comment"], "summary": "发表评论", "responses": {"201": {"description": "Created"}}}
        },
        "/article/{slug}/comment/{id}": {"delete": {"security": [{"BearerAuth": []}], "tags": ["Comment"], "summary": "删除评论", "responses": {"204": {"description": "No Content"}}}},
        "/tag": {"get": {"tags": ["Tag"], "summary": "标签列表", "responses": {"200": {"description": "OK"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {
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
	Title:            "Conduit API",
	Description:      "Conduit 博客平台 API",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
