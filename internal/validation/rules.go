package validation

import (
	"terminal-terrace/conduit/internal/dto"
	"terminal-terrace/conduit/packages/response"
)

// 规则名
const (
	RuleRegister        = "register"
	RuleLogin           = "login"
	RuleAuthHeader      = "auth-header"
	RuleUpdateUser      = "update-user"
	RuleGetProfile      = "get-profile"
	RuleFollowProfile   = "follow-profile"
	RuleUnfollowProfile = "unfollow-profile"
	RuleCreateArticle   = "create-article"
	RuleUpdateArticle   = "update-article"
	RuleArticleParams   = "article-params"
	RuleListArticles    = "list-articles"
	RuleCreateComment   = "create-comment"
	RuleCommentParams   = "comment-params"
)

func init() {
	Register(RuleRegister, Rule{
		Target: TargetBody,
		Schema: func() any { return &dto.RegisterRequest{} },
		Kind:   response.InvalidParameter,
	})
	Register(RuleLogin, Rule{
		Target: TargetBody,
		Schema: func() any { return &dto.LoginRequest{} },
		Kind:   response.InvalidParameter,
	})
	Register(RuleAuthHeader, Rule{
		Target: TargetHeader,
		Schema: func() any { return &dto.AuthHeader{} },
		Kind:   response.Unauthorized,
	})
	Register(RuleUpdateUser, Rule{
		Target: TargetBody,
		Schema: func() any { return &dto.UpdateUserRequest{} },
		Kind:   response.InvalidParameter,
	})
	for _, name := range []string{RuleGetProfile, RuleFollowProfile, RuleUnfollowProfile} {
		Register(name, Rule{
			Target: TargetParams,
			Schema: func() any { return &dto.UsernameParams{} },
			Kind:   response.InvalidParameter,
		})
	}
	Register(RuleCreateArticle, Rule{
		Target: TargetBody,
		Schema: func() any { return &dto.CreateArticleRequest{} },
		Kind:   response.InvalidParameter,
	})
	Register(RuleUpdateArticle, Rule{
		Target: TargetBody,
		Schema: func() any { return &dto.UpdateArticleRequest{} },
		Kind:   response.InvalidParameter,
	})
	Register(RuleArticleParams, Rule{
		Target: TargetParams,
		Schema: func() any { return &dto.ArticleParams{} },
		Kind:   response.InvalidParameter,
	})
	Register(RuleListArticles, Rule{
		Target: TargetQuery,
		Schema: func() any { return &dto.ListArticlesQuery{} },
		Kind:   response.ParseError,
	})
	Register(RuleCreateComment, Rule{
		Target: TargetBody,
		Schema: func() any { return &dto.CreateCommentRequest{} },
		Kind:   response.InvalidParameter,
	})
	Register(RuleCommentParams, Rule{
		Target: TargetParams,
		Schema: func() any { return &dto.CommentParams{} },
		Kind:   response.ParseError,
	})
}
