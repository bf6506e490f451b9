package tutorial

import "log"

// Economy 玩家经济协作者
// Store 只做加法入账，不会覆盖其他余额字段
type Economy interface {
	// Balance 返回当前金币余额
	Balance() int
	// Credit 增加金币
	Credit(amount int)
	// ClearFirstLoginFlag 清除"首次登录"标记，表示新手引导结束
	ClearFirstLoginFlag()
}

// applyRewardLocked 发放步骤奖励
//
// 协作者缺失时奖励被静默丢弃：步骤仍然完成，索引仍然推进。
// 奖励与步骤完成不是事务性绑定的。
func (s *Store) applyRewardLocked(step Step, final bool) {
	if s.economy == nil {
		if step.RewardCoins > 0 || final {
			log.Printf("[TutorialStore] Economy not attached, reward for step %d dropped", step.ID)
		}
		return
	}

	if step.RewardCoins > 0 {
		s.economy.Credit(step.RewardCoins)
		log.Printf("[TutorialStore] Step %d reward: +%d coins (balance %d)", step.ID, step.RewardCoins, s.economy.Balance())
	}

	if step.RewardExp > 0 {
		creditExperience(step)
	}

	if final {
		s.economy.ClearFirstLoginFlag()
		log.Printf("[TutorialStore] First-login flag cleared")
	}
}

// creditExperience 经验奖励占位
// 目录里保留了 RewardExp，但目前没有任何协作者接收经验值，这里只记录日志。
func creditExperience(step Step) {
	log.Printf("[TutorialStore] Experience reward %d for step %d not credited (no experience collaborator)", step.RewardExp, step.ID)
}
