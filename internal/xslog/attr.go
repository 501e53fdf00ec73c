package xslog

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/lunaclock/luna/internal/version"
	"github.com/lunaclock/luna/internal/xhttp"
)

func Error(err error) slog.Attr {
	const errorKey = "error"
	return slog.String(errorKey, err.Error())
}

func Stack() slog.Attr {
	const stackKey = "stack"
	return slog.String(stackKey, string(debug.Stack()))
}

func RequestID(requestID string) slog.Attr {
	const requestIDKey = "request_id"
	return slog.String(requestIDKey, requestID)
}

func HTTPStatus(status int) slog.Attr {
	const statusKey = "status"
	return slog.Int(statusKey, status)
}

func Duration(duration time.Duration) slog.Attr {
	const durationKey = "duration"
	return slog.Duration(durationKey, duration)
}

func RequestMethod(r *http.Request) slog.Attr {
	const methodKey = "method"
	return slog.String(methodKey, r.Method)
}

func RequestPath(r *http.Request) slog.Attr {
	const pathKey = "path"
	return slog.String(pathKey, r.URL.Path)
}

func RequestIP(r *http.Request) slog.Attr {
	const ipKey = "ip"
	return slog.String(ipKey, xhttp.GetRequestIP(r))
}

func Version() slog.Attr {
	const versionKey = "version"
	return slog.String(versionKey, version.Get())
}

func Latitude(lat float64) slog.Attr {
	const latKey = "latitude"
	return slog.Float64(latKey, lat)
}

func Longitude(lon float64) slog.Attr {
	const lonKey = "longitude"
	return slog.Float64(lonKey, lon)
}

func Altitude(alt float64) slog.Attr {
	const altKey = "altitude"
	return slog.Float64(altKey, alt)
}

func Azimuth(az float64) slog.Attr {
	const azKey = "azimuth"
	return slog.Float64(azKey, az)
}

func Rise(t time.Time) slog.Attr {
	const riseKey = "rise"
	return slog.Time(riseKey, t)
}

func Set(t time.Time) slog.Attr {
	const setKey = "set"
	return slog.Time(setKey, t)
}

func ImageID(id int64) slog.Attr {
	const imageIDKey = "image_id"
	return slog.Int64(imageIDKey, id)
}

func File(path string) slog.Attr {
	const fileKey = "file"
	return slog.String(fileKey, path)
}

func Count(count int) slog.Attr {
	const countKey = "count"
	return slog.Int(countKey, count)
}
