// Package parammap maps canonical chat-completion parameters onto each
// provider's native option names, following a static capability table:
// one row per canonical parameter, one column per provider type, with
// rename/scale/clamp/drop rules. Unknown canonical keys are dropped
// silently; for an accepted key, scale is applied before clamp, and
// clamp before the rename that writes it into the output under its
// provider-native name.
package parammap
