package shell

// ResolveEnvironment exposes resolveEnvironment for testing.
var ResolveEnvironment = resolveEnvironment
