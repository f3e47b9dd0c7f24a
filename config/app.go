package config

type App struct {
	Env   string `json:"env" yaml:"env"`
	Debug bool   `json:"debug" yaml:"debug"`
	// 雪花算法节点号，多实例部署时每个实例不同
	NodeID       int64 `json:"node_id" yaml:"node_id"`
	PasswordCost int   `json:"password_cost" yaml:"password_cost"`
}
