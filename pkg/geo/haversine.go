package geo

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// EarthRadiusKm 地球平均半径
const EarthRadiusKm = 6371.0

var ErrInvalidPoint = errors.New(`point must be "lat,lon"`)

// Point 经纬度坐标
type Point struct {
	Lat float64
	Lon float64
}

// HaversineKm 计算两点间的大圆距离（公里）
func HaversineKm(a, b Point) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := toRadians(b.Lat - a.Lat)
	dLon := toRadians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * EarthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

// ParsePoint 解析 "lat,lon" 字符串，两侧空白会被忽略
func ParsePoint(s string) (Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Point{}, ErrInvalidPoint
	}
	lat, err := parseCoord(parts[0])
	if err != nil {
		return Point{}, ErrInvalidPoint
	}
	lon, err := parseCoord(parts[1])
	if err != nil {
		return Point{}, ErrInvalidPoint
	}
	return Point{Lat: lat, Lon: lon}, nil
}

func parseCoord(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidPoint
	}
	return v, nil
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
