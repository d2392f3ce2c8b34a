package microdi

import (
	"fmt"
	"strings"

	"github.com/xraph/go-utils/errs"
)

// =============================================================================
// ERROR CODES
// =============================================================================

const (
	// CodeInvalidKey indicates a key or name argument was empty
	CodeInvalidKey = "INVALID_KEY"

	// CodeNullRegistration indicates a nil blueprint, instance or resolver
	CodeNullRegistration = "NULL_REGISTRATION"

	// CodeUnsupportedInstanceType indicates a bare value was passed to Register
	CodeUnsupportedInstanceType = "UNSUPPORTED_INSTANCE_TYPE"

	// CodeUnregisteredDependency indicates nothing is registered for a key or group
	CodeUnregisteredDependency = "UNREGISTERED_DEPENDENCY"

	// CodeCircularDependency indicates a circular dependency was detected
	CodeCircularDependency = "CIRCULAR_DEPENDENCY"

	// CodeDuplicateGroupAssignment indicates InGroup was called twice on one registration
	CodeDuplicateGroupAssignment = "DUPLICATE_GROUP_ASSIGNMENT"

	// CodeAlreadyBuiltWithArgs indicates extra arguments were passed for a cached instance
	CodeAlreadyBuiltWithArgs = "ALREADY_BUILT_WITH_ARGS"

	// CodeContainerDisposed indicates an operation on a disposed container
	CodeContainerDisposed = "CONTAINER_DISPOSED"

	// CodeUnknownResolver indicates no resolver plugin was found for a name
	CodeUnknownResolver = "UNKNOWN_RESOLVER"

	// CodeConstructionFailed indicates a blueprint returned an error
	CodeConstructionFailed = "CONSTRUCTION_FAILED"

	// CodeTypeMismatch indicates a resolved instance had an unexpected type
	CodeTypeMismatch = "TYPE_MISMATCH"
)

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

// ErrInvalidKey is a sentinel for errors.Is checks on empty keys.
var ErrInvalidKey = errs.NewError(CodeInvalidKey, "invalid key", nil)

// ErrNullRegistration is a sentinel for errors.Is checks on nil registrations.
var ErrNullRegistration = errs.NewError(CodeNullRegistration, "null registration", nil)

// ErrUnsupportedInstanceType is a sentinel for errors.Is checks on bare values.
var ErrUnsupportedInstanceType = errs.NewError(CodeUnsupportedInstanceType, "unsupported instance type", nil)

// ErrUnregisteredDependency is a sentinel for errors.Is checks on missing keys.
var ErrUnregisteredDependency = errs.NewError(CodeUnregisteredDependency, "unregistered dependency", nil)

// ErrCircularDependencySentinel is a sentinel for errors.Is checks on cycles.
var ErrCircularDependencySentinel = errs.NewError(CodeCircularDependency, "circular dependency", nil)

// ErrDuplicateGroupAssignment is a sentinel for errors.Is checks on InGroup.
var ErrDuplicateGroupAssignment = errs.NewError(CodeDuplicateGroupAssignment, "duplicate group assignment", nil)

// ErrAlreadyBuiltWithArgs is a sentinel for errors.Is checks on cached instances.
var ErrAlreadyBuiltWithArgs = errs.NewError(CodeAlreadyBuiltWithArgs, "already built", nil)

// ErrContainerDisposed is returned for any resolving or mutating call on a
// disposed container or one of its descendants.
var ErrContainerDisposed = errs.NewError(CodeContainerDisposed, "Container has been disposed", nil)

// ErrUnknownResolverSentinel is a sentinel for errors.Is checks on resolver lookups.
var ErrUnknownResolverSentinel = errs.NewError(CodeUnknownResolver, "unknown resolver", nil)

// ErrConstructionFailed is a sentinel for errors.Is checks on blueprint failures.
var ErrConstructionFailed = errs.NewError(CodeConstructionFailed, "construction failed", nil)

// ErrTypeMismatchSentinel is a sentinel for errors.Is checks on typed helpers.
var ErrTypeMismatchSentinel = errs.NewError(CodeTypeMismatch, "type mismatch", nil)

// =============================================================================
// ERROR CONSTRUCTORS
// =============================================================================

// errInvalidKey builds the InvalidKey error for a call site, e.g.
// "microdi: error calling Resolve(key, ...args). The key argument can not be ''".
func errInvalidKey(call, argument string) *errs.Error {
	return errs.NewError(
		CodeInvalidKey,
		fmt.Sprintf("microdi: error calling %s. The %s argument can not be ''", call, argument),
		nil,
	).WithContext("call", call).(*errs.Error)
}

// errNullRegistration builds the NullRegistration error for a call site.
func errNullRegistration(call, what, key string) *errs.Error {
	return errs.NewError(
		CodeNullRegistration,
		fmt.Sprintf("microdi: error calling %s. Provided %s for [%s] can not be nil", call, what, key),
		nil,
	).WithContext("call", call).
		WithContext("key", key).(*errs.Error)
}

// errUnsupportedInstanceType is returned by Register for bare values.
func errUnsupportedInstanceType(key, kind string) *errs.Error {
	return errs.NewError(
		CodeUnsupportedInstanceType,
		fmt.Sprintf("microdi: error calling Register(key, blueprint). Can not register a %s instance against key [%s], use RegisterInstance(key, instance)", kind, key),
		nil,
	).WithContext("key", key).
		WithContext("kind", kind).(*errs.Error)
}

// ErrUnregistered creates an error for a key nothing is registered for.
func ErrUnregistered(key string) *errs.Error {
	return errs.NewError(
		CodeUnregisteredDependency,
		fmt.Sprintf("Nothing registered for dependency [%s]", key),
		nil,
	).WithContext("key", key).(*errs.Error)
}

// ErrUnregisteredGroup creates an error for a group no container declares.
func ErrUnregisteredGroup(group string) *errs.Error {
	return errs.NewError(
		CodeUnregisteredDependency,
		fmt.Sprintf("Nothing registered for group [%s]", group),
		nil,
	).WithContext("group", group).(*errs.Error)
}

// ErrCircularDependency creates an error carrying the cycle path.
func ErrCircularDependency(cycle []string) *errs.Error {
	return errs.NewError(
		CodeCircularDependency,
		fmt.Sprintf("Circular dependency detected: %s", strings.Join(cycle, " -> ")),
		nil,
	).WithContext("cycle", cycle).(*errs.Error)
}

// ErrDuplicateGroup creates an error for a second InGroup call.
func ErrDuplicateGroup(key, existing string) *errs.Error {
	return errs.NewError(
		CodeDuplicateGroupAssignment,
		fmt.Sprintf("microdi: error calling InGroup(groupName). Registration [%s] is already in group [%s]", key, existing),
		nil,
	).WithContext("key", key).
		WithContext("group", existing).(*errs.Error)
}

// ErrAlreadyBuilt creates an error for extra arguments passed to a cached instance.
func ErrAlreadyBuilt(key string) *errs.Error {
	return errs.NewError(
		CodeAlreadyBuiltWithArgs,
		fmt.Sprintf("The instance for [%s] is already built, additional dependencies can not be passed", key),
		nil,
	).WithContext("key", key).(*errs.Error)
}

// ErrUnknownResolver creates an error for a resolver name with no plugin.
func ErrUnknownResolver(name string) *errs.Error {
	return errs.NewError(
		CodeUnknownResolver,
		fmt.Sprintf("No resolver registered with name [%s]", name),
		nil,
	).WithContext("resolver", name).(*errs.Error)
}

// NewConstructionError wraps a blueprint failure.
func NewConstructionError(key string, cause error) *errs.Error {
	return errs.NewError(
		CodeConstructionFailed,
		fmt.Sprintf("Error constructing [%s]", key),
		cause,
	).WithContext("key", key).(*errs.Error)
}

// ErrTypeMismatch creates an error for a typed resolve of the wrong type.
func ErrTypeMismatch(key string, actual any) *errs.Error {
	return errs.NewError(
		CodeTypeMismatch,
		fmt.Sprintf("instance for [%s] type mismatch: got %T", key, actual),
		nil,
	).WithContext("key", key).
		WithContext("actual_type", fmt.Sprintf("%T", actual)).(*errs.Error)
}
