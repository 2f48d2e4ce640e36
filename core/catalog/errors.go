package catalog

import (
	"fmt"

	"github.com/goto/siphon/domain"
)

var (
	ErrApiNotFound       = fmt.Errorf("%w: api not found", domain.ErrConfiguration)
	ErrEndpointNotFound  = fmt.Errorf("%w: endpoint not found", domain.ErrConfiguration)
	ErrDuplicateApi      = fmt.Errorf("%w: duplicate api name", domain.ErrConfiguration)
	ErrDuplicateEndpoint = fmt.Errorf("%w: duplicate endpoint name", domain.ErrConfiguration)
	ErrUnknownBackend    = fmt.Errorf("%w: unknown backend kind", domain.ErrConfiguration)
	ErrInvalidApi        = fmt.Errorf("%w: invalid api definition", domain.ErrConfiguration)
)
