package service

import (
	"context"
	"errors"
	"strings"

	"musicbrainz/internal/http-api/repository"
)

var (
	ErrEmptyTag      = errors.New("tag name must not be empty")
	ErrUnknownEntity = errors.New("unknown taggable entity kind")
)

type TagService interface {
	Vote(ctx context.Context, kind repository.TagKind, entityID int64, tagName, editorID string) error
	Withdraw(ctx context.Context, kind repository.TagKind, entityID int64, tagName, editorID string) error
	Cloud(ctx context.Context, kind repository.TagKind, entityID int64) ([]repository.TagWeight, error)
}

type tagService struct {
	repo repository.TagRepository
}

func NewTagService(repo repository.TagRepository) TagService {
	return &tagService{repo: repo}
}

func validKind(kind repository.TagKind) bool {
	switch kind {
	case repository.TagKindArtist, repository.TagKindRelease,
		repository.TagKindTrack, repository.TagKindLabel:
		return true
	}
	return false
}

// normalizeTag lowercases and trims the folksonomy tag before storage so
// "Post-Rock" and "post-rock" fold into one cloud entry.
func normalizeTag(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (s *tagService) Vote(ctx context.Context, kind repository.TagKind, entityID int64, tagName, editorID string) error {
	if !validKind(kind) {
		return ErrUnknownEntity
	}
	name := normalizeTag(tagName)
	if name == "" {
		return ErrEmptyTag
	}
	return s.repo.Vote(ctx, kind, entityID, name, editorID)
}

func (s *tagService) Withdraw(ctx context.Context, kind repository.TagKind, entityID int64, tagName, editorID string) error {
	if !validKind(kind) {
		return ErrUnknownEntity
	}
	name := normalizeTag(tagName)
	if name == "" {
		return ErrEmptyTag
	}
	return s.repo.Withdraw(ctx, kind, entityID, name, editorID)
}

func (s *tagService) Cloud(ctx context.Context, kind repository.TagKind, entityID int64) ([]repository.TagWeight, error) {
	if !validKind(kind) {
		return nil, ErrUnknownEntity
	}
	return s.repo.Cloud(ctx, kind, entityID)
}
