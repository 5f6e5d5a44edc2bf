package validate

import (
	"context"
	"fmt"
	"strings"

	"github.com/netvalid/netvalid/pkg/reconcile"
	"github.com/netvalid/netvalid/pkg/util"
)

// AAAValidator checks the management-plane configuration: AAA new-model,
// login method lists, SSH version, local users and VTY line settings.
// Only fields present in the expected state are compared.
type AAAValidator struct{}

// Name returns the validator name.
func (v *AAAValidator) Name() string {
	return "aaa"
}

// Validate compares the device's AAA and SSH configuration against the
// expected management-plane state.
func (v *AAAValidator) Validate(ctx context.Context, tgt *Target) []reconcile.Result {
	device := tgt.Device.Name
	exp := tgt.Expected.AAA[device]
	if exp == nil {
		util.WithValidator(v.Name()).Debugf("no expectations for %s, skipping", device)
		return nil
	}

	state, err := tgt.Ops.AAA(ctx)
	if err != nil {
		return []reconcile.Result{reconcile.Errored(device, v.Name(), err)}
	}

	var results []reconcile.Result
	if exp.NewModel != nil {
		results = append(results, reconcile.CompareState(device, v.Name(),
			"aaa new-model", "state",
			boolWord(*exp.NewModel), boolWord(state.NewModel), nil))
	}
	if len(exp.AuthenticationLogin) > 0 {
		results = append(results, compareMethodList(device, v.Name(),
			"authentication login", exp.AuthenticationLogin, state.AuthenticationLogin))
	}
	if exp.SSHVersion != "" {
		results = append(results, reconcile.CompareState(device, v.Name(),
			"ssh", "version", exp.SSHVersion, state.SSHVersion, reconcile.State))
	}
	if len(exp.LocalUsers) > 0 {
		results = append(results, v.checkUsers(device, exp.LocalUsers, state.LocalUsers)...)
	}
	if len(exp.VTYTransport) > 0 {
		results = append(results, compareMethodList(device, v.Name(),
			"vty transport input", exp.VTYTransport, state.VTYTransport))
	}
	if exp.ExecTimeout != "" {
		results = append(results, reconcile.CompareState(device, v.Name(),
			"vty exec-timeout", "value", exp.ExecTimeout, state.ExecTimeout, reconcile.State))
	}
	return results
}

// checkUsers verifies every expected local user exists and flags users
// configured beyond the expected set.
func (v *AAAValidator) checkUsers(device string, want, got []string) []reconcile.Result {
	present := make(map[string]bool, len(got))
	for _, u := range got {
		present[strings.ToLower(u)] = true
	}

	var results []reconcile.Result
	for _, u := range want {
		if present[strings.ToLower(u)] {
			results = append(results, reconcile.Passed(device, v.Name(), u,
				fmt.Sprintf("local user %s configured", u)))
		} else {
			results = append(results, reconcile.Missing(device, v.Name(), u, "local user"))
		}
	}
	for _, extra := range reconcile.ExtraKeys(want, got, strings.ToLower) {
		results = append(results, reconcile.Unexpected(device, v.Name(), extra,
			"local user", "not in expected state"))
	}
	return results
}

// compareMethodList compares an ordered method list, such as AAA login
// methods or VTY transports. Order matters on the device so it matters here.
func compareMethodList(device, check, key string, want, got []string) reconcile.Result {
	return reconcile.CompareState(device, check, key, "methods",
		strings.Join(want, " "), strings.Join(got, " "), reconcile.State)
}

func boolWord(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}
