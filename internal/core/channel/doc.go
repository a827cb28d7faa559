// Package channel 实现用户侧通道对象
//
// 两种形态：
//
//   - channel.go / stack.go - 活通道：通道栈持有解析器与通道工厂能力
//     的长期引用，地址更新驱动子通道创建
//   - lame.go               - 残废通道：携带固定失败状态的哨兵对象，
//     构造永不失败，所有操作立即以该状态失败
//
// 活通道的栈在 FinishInit 完成绑定之前缓存到达的地址更新，
// 绑定完成后统一应用；构造方在绑定完成后即放弃对解析器的引用，
// 此后解析器的生命周期完全由通道栈管理。
package channel
