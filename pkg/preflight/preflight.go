// Package preflight probes whether the configured credentials can perform
// the read calls browsing needs, without changing anything in the store.
package preflight

import (
	"context"
	"fmt"

	"github.com/3leaps/s3uri/pkg/provider"
)

// Capability names are stable strings used in reports and logs.
const (
	CapBucketList = "bucket.list"
	CapObjectList = "object.list"
)

// Target is the store surface that is probed.
type Target interface {
	provider.BucketLister
	provider.DelimiterLister
}

// CheckResult is the outcome of probing one capability.
type CheckResult struct {
	Capability string
	Allowed    bool
	Method     string

	// Reason is provider.Reason of the failure; empty when allowed.
	Reason string
	Detail string
}

// Report collects every probe run against one target.
type Report struct {
	Bucket  string
	Prefix  string
	Results []CheckResult
}

// OK reports whether every probed capability is allowed.
func (r *Report) OK() bool {
	for _, res := range r.Results {
		if !res.Allowed {
			return false
		}
	}
	return true
}

// Failed returns the results that were denied or errored.
func (r *Report) Failed() []CheckResult {
	var out []CheckResult
	for _, res := range r.Results {
		if !res.Allowed {
			out = append(out, res)
		}
	}
	return out
}

// DefaultDelimiter groups keys when Run is given no delimiter.
const DefaultDelimiter = "/"

// Run probes bucket enumeration and, when bucket is set, a one-key listing
// under prefix grouped by delimiter. Probes run in order and all of them run
// even after a failure.
func Run(ctx context.Context, target Target, bucket, prefix, delimiter string) *Report {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}

	rep := &Report{
		Bucket:  bucket,
		Prefix:  prefix,
		Results: []CheckResult{},
	}

	_, err := target.ListBuckets(ctx)
	rep.Results = append(rep.Results, result(CapBucketList, "ListBuckets()", err))

	if bucket == "" {
		return rep
	}

	_, err = target.ListWithDelimiter(ctx, provider.ListWithDelimiterOptions{
		Bucket:    bucket,
		Prefix:    prefix,
		Delimiter: delimiter,
		MaxKeys:   1,
	})
	rep.Results = append(rep.Results, result(CapObjectList,
		fmt.Sprintf("ListWithDelimiter(bucket=%q,prefix=%q,delimiter=%q,maxKeys=1)", bucket, prefix, delimiter), err))

	return rep
}

func result(capability, method string, err error) CheckResult {
	if err == nil {
		return CheckResult{Capability: capability, Allowed: true, Method: method}
	}
	return CheckResult{
		Capability: capability,
		Allowed:    false,
		Method:     method,
		Reason:     provider.Reason(err),
		Detail:     err.Error(),
	}
}
