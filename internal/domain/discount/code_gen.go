package discount

import (
	"crypto/rand"
	"math/big"
)

// CodeLength 优惠码长度
const CodeLength = 8

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Generator 优惠码生成函数
type Generator func() (string, error)

// RandomCode 生成CodeLength位大写字母+数字的随机码
// 优惠码可以直接兑换金额，使用crypto/rand避免被猜测
func RandomCode() (string, error) {
	buf := make([]byte, CodeLength)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = codeAlphabet[n.Int64()]
	}
	return string(buf), nil
}
