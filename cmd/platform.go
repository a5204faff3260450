package cmd

// Blank import registers the OS backend with the platform package.
import _ "autoskip/internal/platform/windows"
