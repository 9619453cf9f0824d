package status

// Canonical error constructors, one per non-OK code.

func CancelledError(msg string) Status          { return New(Cancelled, msg) }
func UnknownError(msg string) Status            { return New(Unknown, msg) }
func InvalidArgumentError(msg string) Status    { return New(InvalidArgument, msg) }
func DeadlineExceededError(msg string) Status   { return New(DeadlineExceeded, msg) }
func NotFoundError(msg string) Status           { return New(NotFound, msg) }
func AlreadyExistsError(msg string) Status      { return New(AlreadyExists, msg) }
func PermissionDeniedError(msg string) Status   { return New(PermissionDenied, msg) }
func ResourceExhaustedError(msg string) Status  { return New(ResourceExhausted, msg) }
func FailedPreconditionError(msg string) Status { return New(FailedPrecondition, msg) }
func AbortedError(msg string) Status            { return New(Aborted, msg) }
func OutOfRangeError(msg string) Status         { return New(OutOfRange, msg) }
func UnimplementedError(msg string) Status      { return New(Unimplemented, msg) }
func InternalError(msg string) Status           { return New(Internal, msg) }
func UnavailableError(msg string) Status        { return New(Unavailable, msg) }
func DataLossError(msg string) Status           { return New(DataLoss, msg) }
func UnauthenticatedError(msg string) Status    { return New(Unauthenticated, msg) }
