// Package contract defines the capability a ledger contract implements and the types it exchanges
// with its caller.
//
// A Contract is invoked with an injected ledger.Accessor, a JSON argument object and an optional
// JSON property object. It returns a Result, which is either present (a JSON object) or absent,
// and an error. Caller-visible validation failures are reported as *ContextError values that
// carry an exact message and a sentinel kind:
//
//	result, err := c.Invoke(ctx, store, json.RawMessage(`{"key": 42}`), nil)
//	switch {
//	case errors.Is(err, contract.ErrMissingArgument):
//		// reject the request
//	case err != nil:
//		// ledger failure
//	case !result.IsPresent():
//		// nothing stored under that key
//	}
//
// Not-found is not an error, it is an absent Result.
package contract
