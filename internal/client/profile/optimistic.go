package profile

import "context"

// Mutate runs the optimistic-update dance shared by every profile mutation:
// apply the local patch immediately, fire the request, and reapply the
// inverse patch when the request rejects. The local view reflects the change
// before the server confirms it; on failure the user sees the state roll
// back instead of a half-applied update.
func Mutate(ctx context.Context, apply, invert func(), request func(ctx context.Context) error) error {
	apply()
	if err := request(ctx); err != nil {
		invert()
		return err
	}
	return nil
}
