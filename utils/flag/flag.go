/*
flag Package set up cli flags shared across services

Usage:

	Flags listed in this package are shared across boundaries and service-agnostic
	For service dependent flags please define in their respective package
*/
package flag

import (
	"flag"
)

const (
	APIServer = "api_server"
)

var (
	IsDevelopment bool
	ServiceName   string
	ByPassAuth    bool
)

func init() {
	flag.BoolVar(&IsDevelopment, "dev", true, "set to true if the current run is for development. default value is true")
	flag.StringVar(&ServiceName, "service", APIServer, "name used in logs and traces")
	flag.BoolVar(&ByPassAuth, "no_auth", false, "skip the JWT middleware, admin routes act as an admin actor. local debugging only")
}

// Parse must be called from main after all packages had the chance to
// register their own flags. Calling it from init would swallow the flags
// registered by the testing package.
func Parse() {
	flag.Parse()
}
