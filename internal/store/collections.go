package store

import "chefdhundo-backend/internal/domain"

// CandidateStore caches the resumes collection and forwards owner edits.
type CandidateStore = Store[domain.Candidate, domain.CandidatePatch]

// UserStore caches the users collection. It is read-only.
type UserStore = Store[domain.User, struct{}]

func NewCandidateStore(repo domain.CandidateRepository, opts ...Option[domain.Candidate, domain.CandidatePatch]) *CandidateStore {
	opts = append([]Option[domain.Candidate, domain.CandidatePatch]{
		WithPatcher[domain.Candidate, domain.CandidatePatch](repo),
	}, opts...)
	return New[domain.Candidate, domain.CandidatePatch](repo, opts...)
}

func NewUserStore(repo domain.UserRepository, opts ...Option[domain.User, struct{}]) *UserStore {
	return New[domain.User, struct{}](repo, opts...)
}
