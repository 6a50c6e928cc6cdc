package vendorapi

import "errors"

var (
	// ErrVendorAuth means the vendor rejected the login call or answered
	// with something that is not a recognizable login response.
	ErrVendorAuth = errors.New("vendor authentication failed")

	// ErrVendorList means the plant-list call failed or its response could
	// not be normalized into plants.
	ErrVendorList = errors.New("vendor plant list failed")

	// ErrUnsupportedManufacturer means no adapter is registered for the
	// requested manufacturer identifier.
	ErrUnsupportedManufacturer = errors.New("unsupported manufacturer")
)
