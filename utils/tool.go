package utils

import (
	"crypto/rand"
	"encoding/binary"
	"net"
	"os"
	"strings"
	"sync"
	"time"
)

const base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// InstanceIDLength 实例ID长度
const InstanceIDLength = 16

// base62Encode 将数字编码为定长base62字符串，不足时在前面补0
func base62Encode(n uint64, length int) string {
	result := make([]byte, length)
	for i := length - 1; i >= 0; i-- {
		result[i] = base62Chars[n%62]
		n /= 62
	}
	return string(result)
}

// getMachineFingerprint 由主机名和第一个有效MAC地址计算机器指纹
func getMachineFingerprint() uint64 {
	var fingerprint uint64

	if hostname, err := os.Hostname(); err == nil {
		for _, b := range []byte(hostname) {
			fingerprint = fingerprint*31 + uint64(b)
		}
	}

	if interfaces, err := net.Interfaces(); err == nil {
		for _, iface := range interfaces {
			if len(iface.HardwareAddr) > 0 {
				for _, b := range iface.HardwareAddr {
					fingerprint = fingerprint*31 + uint64(b)
				}
				break
			}
		}
	}

	return fingerprint
}

// getSecureRandom 获取加密安全的随机数，失败时回退到时间戳
func getSecureRandom() uint64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return uint64(time.Now().UnixNano())
	}
	return binary.BigEndian.Uint64(buf[:])
}

// NewInstanceID 生成16位实例ID，混合机器指纹、启动时间和随机数
func NewInstanceID() string {
	combined := getMachineFingerprint() + uint64(time.Now().UnixMilli()) + getSecureRandom()
	return base62Encode(combined, InstanceIDLength)
}

var (
	instanceOnce sync.Once
	instanceID   string
)

// InstanceID 当前进程的实例ID，进程内保持不变。变更事件用它标明来源
func InstanceID() string {
	instanceOnce.Do(func() {
		instanceID = NewInstanceID()
	})
	return instanceID
}

// ValidateInstanceID 验证实例ID格式
func ValidateInstanceID(id string) bool {
	if len(id) != InstanceIDLength {
		return false
	}
	for _, char := range id {
		if !strings.ContainsRune(base62Chars, char) {
			return false
		}
	}
	return true
}
