// Copyright 2026 The Routeway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mask

import (
	"net"
	"regexp"
	"strings"
)

// ExpandHost substitutes %tld%, %domain% and %sld% in pattern with parts
// derived from host. Substitution is purely textual; the caller compares
// the result for equality. Hosts that parse as IPv4 addresses are treated
// as a single label.
func ExpandHost(pattern, host string) string {
	tld, domain, sld := hostParts(host)
	return strings.NewReplacer(
		"%tld%", tld,
		"%domain%", domain,
		"%sld%", sld,
	).Replace(pattern)
}

// hostParts splits a host into the three substitution values.
//
//	%tld%    last label, or the whole host for IPv4 addresses
//	%domain% last two labels joined, or the single label
//	%sld%    the labels in front of %domain%, or the second-last label
//	         when the host has exactly two
func hostParts(host string) (tld, domain, sld string) {
	if ip := net.ParseIP(host); ip != nil && ip.To4() != nil {
		return host, host, ""
	}
	labels := strings.Split(host, ".")
	n := len(labels)
	tld = labels[n-1]
	switch {
	case n == 1:
		return tld, tld, ""
	case n == 2:
		return tld, labels[0] + "." + tld, labels[0]
	default:
		return tld, labels[n-2] + "." + tld, strings.Join(labels[:n-2], ".")
	}
}

// MatchHost matches a request host against the mask's host pattern. The
// %tld%/%domain%/%sld% substitutions are expanded from the request host
// before matching, so a pattern like "//www.%domain%/" matches the www
// variant of whatever domain the request arrived on. On success it returns
// the values of host placeholders. Relative masks match any host.
func (m *Mask) MatchHost(host string) (map[string]string, bool) {
	if m.hostRaw == "" {
		return nil, true
	}
	tld, domain, sld := hostParts(host)
	expanded := strings.NewReplacer(
		markTLD, regexp.QuoteMeta(tld),
		markDomain, regexp.QuoteMeta(domain),
		markSLD, regexp.QuoteMeta(sld),
	).Replace(m.hostReTemplate)

	re, err := regexp.Compile(expanded)
	if err != nil {
		return nil, false
	}
	idx := re.FindStringSubmatchIndex(host)
	if idx == nil {
		return nil, false
	}
	vals := make(map[string]string, len(m.hostGroupNames))
	for gi, name := range m.hostGroupNames {
		lo, hi := idx[2*(gi+1)], idx[2*(gi+1)+1]
		if lo < 0 {
			continue
		}
		vals[name] = host[lo:hi]
	}
	return vals, true
}

// RenderHost renders the mask's host part for outbound construction.
// Literal text is expanded against the reference host; placeholders are
// resolved through lk. Relative masks render the reference host verbatim.
func (m *Mask) RenderHost(refHost string, lk Lookup) (string, bool) {
	if m.hostRaw == "" {
		return refHost, true
	}
	var sb strings.Builder
	for _, t := range m.hostTokens {
		switch t.kind {
		case tokenLiteral:
			sb.WriteString(ExpandHost(t.text, refHost))
		case tokenPlaceholder:
			v, ok, _ := lk(t.name)
			if !ok {
				return "", false
			}
			sb.WriteString(v)
		}
	}
	return sb.String(), true
}
