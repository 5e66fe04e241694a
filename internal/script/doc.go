// Package script defines the common interface that script engines must
// implement, the typed control-flow signals scripts can raise (abort,
// method-not-found), the extension-keyed engine registry, and the shared
// cache of compiled, constructed script instances reused across invocations.
package script
