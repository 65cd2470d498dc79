package lsp

import (
	"fmt"
	"runtime/debug"

	"github.com/tliron/glsp"

	"github.com/aurelia/aurelia-ls-sub004/internal/log"
	lspworkspace "github.com/aurelia/aurelia-ls-sub004/lsp/methods/workspace"
	"github.com/aurelia/aurelia-ls-sub004/lsp/types"
)

// method wraps a request handler with panic recovery, request/response
// logging via internal/log, and window/logMessage propagation of
// errors and handler-collected warnings (grounded on the teacher's own
// lsp/middleware.go, generalized from its two-type-parameter shape
// unchanged).
func method[P, R any](
	s types.ServerContext,
	methodName string,
	handler func(*types.RequestContext, P) (R, error),
) func(*glsp.Context, P) (R, error) {
	return func(glspCtx *glsp.Context, params P) (result R, err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic in %s: %v\n%s", methodName, r, debug.Stack())
				lspworkspace.LogError(glspCtx, "internal error in %s: %v", methodName, r)
				err = fmt.Errorf("internal error in %s", methodName)
				var zero R
				result = zero
			}
		}()

		log.Debug("%s started", methodName)
		req := types.NewRequestContext(s, glspCtx)
		result, err = handler(req, params)

		if err == nil {
			for _, w := range req.Warnings() {
				lspworkspace.LogWarning(glspCtx, "%s warning: %v", methodName, w)
			}
		}

		if err != nil {
			log.Error("%s error: %v", methodName, err)
			lspworkspace.LogError(glspCtx, "%s: %v", methodName, err)
			return result, fmt.Errorf("%s: %w", methodName, err)
		}

		log.Debug("%s completed", methodName)
		return result, nil
	}
}

// notify wraps a notification handler (no response value).
func notify[P any](
	s types.ServerContext,
	methodName string,
	handler func(*types.RequestContext, P) error,
) func(*glsp.Context, P) error {
	return func(glspCtx *glsp.Context, params P) (err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic in %s: %v\n%s", methodName, r, debug.Stack())
				lspworkspace.LogError(glspCtx, "internal error in %s: %v", methodName, r)
				err = fmt.Errorf("internal error in %s", methodName)
			}
		}()

		log.Debug("%s started", methodName)
		req := types.NewRequestContext(s, glspCtx)
		err = handler(req, params)

		if err == nil {
			for _, w := range req.Warnings() {
				lspworkspace.LogWarning(glspCtx, "%s warning: %v", methodName, w)
			}
		}

		if err != nil {
			log.Error("%s error: %v", methodName, err)
			lspworkspace.LogError(glspCtx, "%s: %v", methodName, err)
			return fmt.Errorf("%s: %w", methodName, err)
		}

		log.Debug("%s completed", methodName)
		return nil
	}
}

// noParam wraps a parameterless handler (like shutdown).
func noParam(
	s types.ServerContext,
	methodName string,
	handler func(*types.RequestContext) error,
) func(*glsp.Context) error {
	return func(glspCtx *glsp.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic in %s: %v\n%s", methodName, r, debug.Stack())
				lspworkspace.LogError(glspCtx, "internal error in %s: %v", methodName, r)
				err = fmt.Errorf("internal error in %s", methodName)
			}
		}()

		log.Debug("%s started", methodName)
		req := types.NewRequestContext(s, glspCtx)
		err = handler(req)

		if err == nil {
			for _, w := range req.Warnings() {
				lspworkspace.LogWarning(glspCtx, "%s warning: %v", methodName, w)
			}
		}

		if err != nil {
			log.Error("%s error: %v", methodName, err)
			lspworkspace.LogError(glspCtx, "%s: %v", methodName, err)
			return fmt.Errorf("%s: %w", methodName, err)
		}

		log.Debug("%s completed", methodName)
		return nil
	}
}
