// Package factory 实现通道工厂能力
//
// 工厂能力是共享所有权的引用计数对象，把一个安全连接器与
// 解析器注册表、传输连接器工厂捆绑为通道/子通道的创建入口：
//
//   - CreateSubchannel - 组装连接器链，构造一个连接尝试单元（永不失败）
//   - CreateChannel    - 构造通道并绑定解析器；解析器创建失败时
//     释放部分构造的通道，以错误上报（唯一的 nil 通道路径）
//
// 每次通道构造创建一个工厂能力（计数 1），创建时对安全连接器
// 取一个长期引用；计数归零时释放该引用。
package factory
