package markdown

// Version is the library version reported by the mdlex CLI.
const Version = "0.3.0"

// BuildDate is stamped by the release script via -ldflags; "dev" otherwise.
var BuildDate = "dev"
