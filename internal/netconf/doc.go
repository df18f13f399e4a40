// Package netconf implements the NETCONF-over-SSH client used to apply
// block-list changes to devices.
//
// The package covers exactly the protocol surface the push engine needs:
// session establishment (SSH subsystem, hello exchange), NETCONF 1.0
// end-of-message framing, and the six operations of the transaction
// (connect, lock, edit-config, validate, commit, unlock). It is not a
// general NETCONF library; get/get-config, notifications, and chunked
// framing are out of scope.
//
// # Usage Example
//
//	session, err := netconf.Dial(ctx, netconf.Config{
//	    Host:     "edge-fw-01.example.net",
//	    Username: "automation",
//	    Password: password,
//	})
//	if err != nil {
//	    return err
//	}
//	defer session.Close()
//
//	if err := session.Lock(ctx); err != nil {
//	    return err
//	}
//	defer session.Unlock(ctx)
//
//	if err := session.EditConfig(ctx, fragment); err != nil {
//	    return err
//	}
//	if err := session.Validate(ctx); err != nil {
//	    return err
//	}
//	if err := session.Commit(ctx, "ticket NET-4211"); err != nil {
//	    return err
//	}
//
// # Error Reporting
//
// Device-reported failures arrive as <rpc-error> elements and are surfaced
// as *RPCError values in the wrapped error chain, preserving the device's
// own error-tag, severity, and message. Transport failures and context
// timeouts are returned as wrapped errors; callers distinguish steps, not
// this package.
//
// # Concurrency
//
// A Session is owned by a single goroutine. The fleet coordinator opens one
// session per device; sessions never share state.
package netconf
