package pinata

import "context"

// API defines the full client contract. It mirrors the concrete client so
// callers can mock Pinata interactions in tests.
type API interface {
	TestAuthentication(ctx context.Context) error
	SetHashPinPolicy(ctx context.Context, policy HashPinPolicy) error
	PinByHash(ctx context.Context, pin PinByHash) (*PinByHashResult, error)
	PinJobs(ctx context.Context, filter PinJobsFilter) (*PinJobs, error)
	PinJSON(ctx context.Context, pin PinByJSON) (*PinnedObject, error)
	PinFile(ctx context.Context, pin PinByFile) (*PinnedObject, error)
	Unpin(ctx context.Context, hash string) error
	ChangeHashMetadata(ctx context.Context, change ChangeHashMetadata) error
	TotalPinnedData(ctx context.Context) (*TotalPinnedData, error)
	PinList(ctx context.Context, filter PinListFilter) (*PinList, error)
}
