package transfer

import (
	"errors"
	"fmt"

	"github.com/goto/siphon/domain"
)

var (
	ErrTransferInProgress = errors.New("a transfer is already running for this entity")
	ErrInvalidRequest     = fmt.Errorf("%w: invalid transfer request", domain.ErrConfiguration)
)
