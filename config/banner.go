package config

import "github.com/ternarybob/banner"

// Version is overridden at build time with -ldflags "-X restaurant-lookup/config.Version=...".
var Version = "dev"

func PrintBanner(service string) {
	banner.PrintSimple(service, Version)
}
