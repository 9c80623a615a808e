package api

import (
	"artha/config"
)

// SafeErrorMessage hides internal error details from clients outside debug mode.
func SafeErrorMessage(err error, fallback string) string {
	return config.SafeErrorMessage(err, fallback)
}
