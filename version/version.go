package version

// Values are injected at build time using
// -ldflags "-X github.com/TeamNorCal/fxstrip/version.GitHash=... -X github.com/TeamNorCal/fxstrip/version.BuildTime=..."
var (
	GitHash   = "unknown"
	BuildTime = "unknown"
)
