package patterns

// builtinHandlers names the handler shapes a configuration-driven
// pattern registration (internal/config's PatternSpec) can pick among,
// since a server can't receive an arbitrary function over the wire.
var builtinHandlers = map[string]Handler{
	"target-command":   targetCommandHandler,
	"bind-implicit":    bindImplicitHandler,
	"trigger-implicit": triggerImplicitHandler,
	"trigger-modifier": triggerModifierHandler,
}

// HandlerByName returns one of the built-in handler shapes by name, or
// ok=false if name doesn't match any of them.
func HandlerByName(name string) (Handler, bool) {
	h, ok := builtinHandlers[name]
	return h, ok
}

// targetCommandHandler implements `PART.PART`: target and command
// separated by a literal `.` (spec.md §4.3 "Common patterns").
func targetCommandHandler(name string, parts []string) Result {
	target := parts[0]
	command := parts[1]
	targetSpan := [2]int{0, len(target)}
	commandSpan := [2]int{len(name) - len(command), len(name)}
	return Result{
		Target:      target,
		TargetSpan:  &targetSpan,
		Command:     command,
		CommandSpan: &commandSpan,
	}
}

// bindImplicitHandler implements `:PART`: target with an implicit
// `bind` command.
func bindImplicitHandler(name string, parts []string) Result {
	target := parts[0]
	targetSpan := [2]int{1, len(name)}
	return Result{
		Target:     target,
		TargetSpan: &targetSpan,
		Command:    "bind",
	}
}

// triggerImplicitHandler implements `@PART`: target with an implicit
// `trigger` command.
func triggerImplicitHandler(name string, parts []string) Result {
	target := parts[0]
	targetSpan := [2]int{1, len(name)}
	return Result{
		Target:     target,
		TargetSpan: &targetSpan,
		Command:    "trigger",
	}
}

// triggerModifierHandler implements `@PART:PART`, e.g. `@click:once` or
// `@scroll:capture`: the first PART is the target, the second is a
// listener-option modifier the linker folds into the emitted
// listenerBinding instruction alongside the implicit `trigger` command.
func triggerModifierHandler(name string, parts []string) Result {
	target := parts[0]
	modifier := parts[1]
	targetSpan := [2]int{1, 1 + len(target)}
	commandSpan := [2]int{len(name) - len(modifier), len(name)}
	return Result{
		Target:      target,
		TargetSpan:  &targetSpan,
		Command:     "trigger",
		CommandSpan: &commandSpan,
		// modifier itself is available via Result.Parts[1]
	}
}
