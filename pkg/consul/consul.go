package consul

import (
	"fmt"
	"strconv"

	consulapi "github.com/hashicorp/consul/api"
	"go.uber.org/zap"

	"github.com/surya-tn99/lumi-your-voice-for-care/config"
)

// ConsulConn registers the service with a consul agent and deregisters it
// on shutdown.
type ConsulConn struct {
	logger    *zap.SugaredLogger
	cfg       *config.Config
	client    *consulapi.Client
	serviceID string
}

func NewConsulConn(logger *zap.SugaredLogger, cfg *config.Config) *ConsulConn {
	return &ConsulConn{
		logger:    logger,
		cfg:       cfg,
		serviceID: fmt.Sprintf("%s-%s", cfg.ServiceName, cfg.Port),
	}
}

func (c *ConsulConn) Connect() *consulapi.Client {
	consulCfg := consulapi.DefaultConfig()
	consulCfg.Address = c.cfg.ConsulAddress

	client, err := consulapi.NewClient(consulCfg)
	if err != nil {
		c.logger.Errorf("Failed to create consul client: %v", err)
		return nil
	}
	c.client = client

	port, err := strconv.Atoi(c.cfg.Port)
	if err != nil {
		c.logger.Errorf("Invalid port %q for consul registration: %v", c.cfg.Port, err)
		return client
	}

	registration := &consulapi.AgentServiceRegistration{
		ID:   c.serviceID,
		Name: c.cfg.ServiceName,
		Port: port,
		Check: &consulapi.AgentServiceCheck{
			HTTP:     fmt.Sprintf("http://localhost:%s/health", c.cfg.Port),
			Interval: "10s",
			Timeout:  "2s",
		},
	}

	if err := client.Agent().ServiceRegister(registration); err != nil {
		c.logger.Errorf("Failed to register service with consul: %v", err)
		return client
	}

	c.logger.Infof("Registered %s with consul at %s", c.serviceID, c.cfg.ConsulAddress)
	return client
}

func (c *ConsulConn) Deregister() {
	if c.client == nil {
		return
	}
	if err := c.client.Agent().ServiceDeregister(c.serviceID); err != nil {
		c.logger.Errorf("Failed to deregister service from consul: %v", err)
		return
	}
	c.logger.Infof("Deregistered %s from consul", c.serviceID)
}
