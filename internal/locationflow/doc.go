// Package locationflow implements the permission and last-location flow
// behind the app's single screen.
//
// A [Flow] decides whether coarse location access is authorized, requests it
// when it is not, and queries the last known location once it is. Every
// outcome ends in something the user can see on the [Surface]: coordinates,
// a plain message, or a message with one recovery action.
//
// # Threading
//
// Flow methods must be called on the UI thread. Blocking collaborator calls
// (the permission dialog and the location query) run through the configured
// executor, and their completion is re-entered through the dispatcher, so
// Surface methods are always invoked on the UI thread as well. A Flow has no
// locks; it relies on this single-thread contract.
//
// # Collaborators
//
// The platform is reached only through [PermissionRegistry], [Locator] and
// [SettingsNavigator]. Tests substitute fakes; the app wires the Drift-backed
// implementations from the device package.
package locationflow
