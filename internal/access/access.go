// Package access решает, может ли пользователь менять или удалять ресурс.
// Правило одно для статей и комментариев: только автор.
package access

import (
	"context"

	"github.com/VitaminP8/storyline/internal/apperr"
)

// Owned - ресурс с неизменяемым автором
type Owned interface {
	OwnerID() uint
}

// Authorize разрешает действие только автору ресурса.
// Сравниваются id, а не имя или email
func Authorize(identity uint, resource Owned) error {
	if identity == 0 || resource.OwnerID() != identity {
		return apperr.Forbidden("Forbidden")
	}
	return nil
}

// Load сначала загружает ресурс (NotFound если его нет), потом проверяет автора.
// Так несуществующий ресурс всегда дает NotFound, а не Forbidden
func Load[T Owned](ctx context.Context, identity uint, load func(ctx context.Context) (T, error)) (T, error) {
	resource, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	if err := Authorize(identity, resource); err != nil {
		var zero T
		return zero, err
	}
	return resource, nil
}
