package providers

import (
	"flixmap/internal/structures"
	"fmt"

	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return fmt.Errorf("invalid config: %s", v.Errors.One())
	}
	if cv.conf.Crawler.Enabled && (cv.conf.Crawler.Type == "" || cv.conf.Crawler.Mode == "") {
		return fmt.Errorf("invalid config: crawler.type and crawler.mode are required when the crawler is enabled")
	}
	return nil
}
