package manufacturer

import "solarkeeper/internal/domain/manufacturer"

type listOutput struct {
	Body []manufacturer.Manufacturer
}
