package childprofile

import "context"

// Repository persists child profiles. GetByID returns (nil, nil) when missing.
type Repository interface {
	// CreateWithinLimit inserts profile only while its owner has fewer than
	// limit profiles, and reports whether it did. Concurrent calls for one
	// owner are serialized.
	CreateWithinLimit(ctx context.Context, profile *ChildProfile, limit int) (bool, error)
	GetByID(ctx context.Context, id string) (*ChildProfile, error)
	ListByUser(ctx context.Context, userID string) ([]*ChildProfile, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	ExistsByNameKey(ctx context.Context, userID, nameKey string) (bool, error)
	UpdateAvatar(ctx context.Context, profile *ChildProfile) error
	Delete(ctx context.Context, id string) error
}
