package roster

import "context"

// Repository loads the canonical roster. The same roster serves every sheet.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
}
