package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// core holds the collaborators shared by every resource handle.
type core struct {
	transport Transport
	logger    Logger
}

// checkCancelled is evaluated once at the entry of every operation, before
// any builder runs or any request is dispatched.
func checkCancelled(ctx context.Context) *Error {
	if ctx == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return newCancelledError(err)
	}
	return nil
}

// send logs and dispatches req. Once dispatched, the request is detached
// from ctx cancellation.
func (c *core) send(ctx context.Context, req Request, msg string, fields ...interface{}) (Response, DebugInfo, *Error) {
	fields = append(fields, "method", req.Method, "url", req.URL())
	logInfo(ctx, c.logger, msg, fields...)

	resp, err := c.transport.Invoke(context.WithoutCancel(ctx), req)
	debug := DebugInfo{
		Method:     req.Method,
		URL:        req.URL(),
		Request:    string(resp.Request),
		Response:   string(resp.Body),
		StatusCode: resp.StatusCode,
	}
	if err != nil {
		return resp, debug, newTransportError("request to management API failed", err, map[string]interface{}{
			"method": req.Method,
			"url":    req.URL(),
		})
	}
	if resp.Status != StatusSuccess {
		return resp, debug, statusError(req, resp)
	}
	return resp, debug, nil
}

// brokerFault mirrors the management API's error document.
type brokerFault struct {
	Error  string `json:"error"`
	Reason string `json:"reason"`
}

func statusError(req Request, resp Response) *Error {
	reason := strings.TrimSpace(string(resp.Body))
	var fault brokerFault
	if err := json.Unmarshal(resp.Body, &fault); err == nil {
		switch {
		case fault.Reason != "":
			reason = fault.Reason
		case fault.Error != "":
			reason = fault.Error
		}
	}

	msg := fmt.Sprintf("%s %s returned %d (%s)", req.Method, req.URL(), resp.StatusCode, resp.Status)
	if reason != "" {
		msg = fmt.Sprintf("%s: %s", msg, reason)
	}
	return newTransportError(msg, nil, map[string]interface{}{
		"status_code": resp.StatusCode,
		"category":    resp.Status.String(),
		"url":         req.URL(),
	})
}

// exec runs the validation short-circuit and dispatches a request whose
// response carries no payload.
func exec(ctx context.Context, c *core, errs []*Error, req Request, msg string, fields ...interface{}) Result[Empty] {
	if len(errs) > 0 {
		return Faulted[Empty](DebugInfo{}, errs...)
	}
	_, debug, err := c.send(ctx, req, msg, fields...)
	if err != nil {
		return Faulted[Empty](debug, err)
	}
	return SuccessEmpty(debug)
}

// execList dispatches req and decodes a JSON array response.
func execList[T any](ctx context.Context, c *core, errs []*Error, req Request, msg string, fields ...interface{}) Result[[]T] {
	if len(errs) > 0 {
		return Faulted[[]T](DebugInfo{}, errs...)
	}
	resp, debug, err := c.send(ctx, req, msg, fields...)
	if err != nil {
		return Faulted[[]T](debug, err)
	}

	var items []T
	if body := bytes.TrimSpace(resp.Body); len(body) > 0 {
		if err := json.Unmarshal(body, &items); err != nil {
			return Faulted[[]T](debug, newTransportError("decode response", err, map[string]interface{}{"url": req.URL()}))
		}
	}
	return SuccessList(items, debug)
}

// execGet dispatches req and decodes a single JSON document.
func execGet[T any](ctx context.Context, c *core, req Request, msg string, fields ...interface{}) Result[T] {
	resp, debug, err := c.send(ctx, req, msg, fields...)
	if err != nil {
		return Faulted[T](debug, err)
	}

	var out T
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return Faulted[T](debug, newTransportError("decode response", err, map[string]interface{}{"url": req.URL()}))
	}
	return Success(out, debug)
}

// list is the shared GetAll implementation.
func list[T any](ctx context.Context, c *core, resource string) Result[[]T] {
	if err := checkCancelled(ctx); err != nil {
		return Faulted[[]T](DebugInfo{}, err)
	}
	req := Request{Method: http.MethodGet, Path: "api/" + resource}
	return execList[T](ctx, c, nil, req, "sent request to return all "+resource, "resource", resource)
}

func scopedPath(resource, vhost, name string) string {
	return fmt.Sprintf("api/%s/%s/%s", resource, SanitizeVirtualHost(vhost), escapeSegment(name))
}
