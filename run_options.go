package wechatpay

import "github.com/alfredzh/wechat-pay/log"

// RunOption controls behavior of a single SDK call.
type RunOption func(*runOptions)

// DryRunHandler receives the request that would have been sent.
type DryRunHandler func(url string, body []byte)

type runOptions struct {
	dryRun       bool
	dryRunHandle DryRunHandler
}

var dryRunLogger = log.NewDefault()

// DryRun builds and signs the request but skips the network exchange.
//
// Optional handler lets you inspect the serialized envelope.
func DryRun(handler ...DryRunHandler) RunOption {
	return func(o *runOptions) {
		o.dryRun = true
		if len(handler) > 0 && handler[0] != nil {
			o.dryRunHandle = handler[0]
			return
		}
		o.dryRunHandle = defaultDryRunHandler
	}
}

func shouldDryRun(runOpts []RunOption, url string, body []byte) bool {
	if len(runOpts) == 0 {
		return false
	}
	o := &runOptions{}
	for _, opt := range runOpts {
		if opt != nil {
			opt(o)
		}
	}
	if !o.dryRun {
		return false
	}
	if o.dryRunHandle != nil {
		o.dryRunHandle(url, body)
	}
	return true
}

func defaultDryRunHandler(url string, body []byte) {
	dryRunLogger.Infof("Dry run: skipping request POST %s", url)
	dryRunLogger.Infof("Dry run payload:\n%s", string(body))
}
