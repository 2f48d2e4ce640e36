package preference

import (
	"fmt"

	"github.com/goto/siphon/domain"
)

var ErrInvalidPreference = fmt.Errorf("%w: entity and field are required", domain.ErrConfiguration)
