package tag

import (
	"context"

	"terminal-terrace/conduit/internal/dto"
	"terminal-terrace/conduit/packages/response"
)

// TagLister 列出已使用的标签名
type TagLister interface {
	ListNames(ctx context.Context) ([]string, error)
}

type TagService struct {
	tags TagLister
}

func NewTagService(tags TagLister) *TagService {
	return &TagService{tags: tags}
}

func (s *TagService) List(ctx context.Context) (dto.TagListResponse, *response.BusinessError) {
	names, err := s.tags.ListNames(ctx)
	if err != nil {
		return dto.TagListResponse{}, response.Internal(err)
	}
	return dto.NewTagListResponse(names), nil
}
