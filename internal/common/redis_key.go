package common

import (
	"fmt"

	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/entity"
)

func RedisKeyRotation(category entity.Category) string {
	return fmt.Sprintf("rotation:%s", category)
}
